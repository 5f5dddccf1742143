package slates

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
)

func TestNormalizePlayer_Fallbacks(t *testing.T) {
	p := NormalizePlayer(&models.RawPlayer{})

	assert.Equal(t, models.Player{
		ID:       "",
		Name:     "Unknown Player",
		Team:     "N/A",
		Position: "N/A",
		Salary:   "$0",
		Points:   "0",
	}, p)
}

func TestNormalizePlayer_NilIsFallback(t *testing.T) {
	assert.Equal(t, NormalizePlayer(&models.RawPlayer{}), NormalizePlayer(nil))
}

func TestNormalizePlayer_Formats(t *testing.T) {
	tests := []struct {
		name   string
		raw    models.RawPlayer
		id     string
		salary string
		points string
	}{
		{"thousands", models.RawPlayer{SlatePlayerID: 1, OperatorSalary: 10000, FantasyPoints: 21}, "1", "$10,000", "21"},
		{"under a thousand", models.RawPlayer{SlatePlayerID: 42, OperatorSalary: 500, FantasyPoints: 0.5}, "42", "$500", "0.5"},
		{"millions", models.RawPlayer{SlatePlayerID: 123456, OperatorSalary: 1234567, FantasyPoints: 18.25}, "123456", "$1,234,567", "18.25"},
		{"zero salary and points", models.RawPlayer{SlatePlayerID: 7}, "7", "$0", "0"},
		{"negative projection", models.RawPlayer{SlatePlayerID: 8, OperatorSalary: 3000, FantasyPoints: -1.2}, "8", "$3,000", "-1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.raw.OperatorPlayerName = "Player"
			p := NormalizePlayer(&tt.raw)
			assert.Equal(t, tt.id, p.ID)
			assert.Equal(t, tt.salary, p.Salary)
			assert.Equal(t, tt.points, p.Points)
		})
	}
}

func TestNormalizePlayer_SalaryAndPointsShape(t *testing.T) {
	salaryShape := regexp.MustCompile(`^\$\d{1,3}(,\d{3})*$`)
	pointsShape := regexp.MustCompile(`^-?\d+(\.\d+)?$`)

	for _, salary := range []float64{0, 200, 3500, 9000, 10000, 45000, 100000, 2500000} {
		p := NormalizePlayer(&models.RawPlayer{OperatorPlayerName: "P", OperatorSalary: salary, FantasyPoints: salary / 400})
		assert.Regexp(t, salaryShape, p.Salary)
		assert.Regexp(t, pointsShape, p.Points)
		assert.NotContains(t, p.Points, "$")
	}
}

func TestListable(t *testing.T) {
	assert.False(t, Listable(nil))
	assert.False(t, Listable(&models.RawPlayer{}))
	assert.False(t, Listable(&models.RawPlayer{OperatorPlayerName: "49ers D/ST"}))
	assert.True(t, Listable(&models.RawPlayer{OperatorPlayerName: "Brock Purdy"}))
}
