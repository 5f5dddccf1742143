package main

import (
	"context"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/config"
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/dataset"
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/slates"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openSource builds the dataset source selected by configuration.
// The returned closer releases any connection the source holds.
func openSource(ctx context.Context, dc config.DatasetConfig) (dataset.Source, io.Closer, error) {
	switch dc.Source {
	case config.SourceRedis:
		opts, err := redis.ParseURL(dc.RedisURL)
		if err != nil {
			return nil, nil, eris.Wrap(err, "parse redis url")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, eris.Wrap(err, "connect to redis")
		}
		return dataset.NewRedisSource(client, dc.RedisKey), client, nil

	case config.SourcePostgres:
		src, err := dataset.NewPostgresSource(dc.PostgresDSN, dc.Table)
		if err != nil {
			return nil, nil, err
		}
		return src, src, nil

	case config.SourceFile:
		return dataset.NewFileSource(dc.Path), nopCloser{}, nil
	}

	return nil, nil, eris.Errorf("unknown dataset source %q", dc.Source)
}

// loadIndex reads the configured dataset and builds the filter index
func loadIndex(ctx context.Context, dc config.DatasetConfig) (*slates.Index, error) {
	src, closer, err := openSource(ctx, dc)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	raw, err := dataset.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	index := slates.BuildIndex(raw)
	zap.L().Info("slate index built",
		zap.String("source", src.Name()),
		zap.Int("slates", len(raw)),
		zap.Int("operators", len(index.Operators())),
	)
	return index, nil
}
