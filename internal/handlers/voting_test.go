package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRIPMATE_BACK-END/internal/dto"
	"TRIPMATE_BACK-END/internal/models"
)

func TestValidateBallot(t *testing.T) {
	tests := []struct {
		name     string
		rankings []dto.ProvinceRanking
		wantErr  string
	}{
		{
			name: "valid three entry ballot",
			rankings: []dto.ProvinceRanking{
				{Province: "Chiang Mai", Rank: 1},
				{Province: "Phuket", Rank: 2},
				{Province: "Krabi", Rank: 3},
			},
		},
		{
			name:     "single entry ballot",
			rankings: []dto.ProvinceRanking{{Province: "Chiang Mai", Rank: 1}},
		},
		{
			name: "rank out of range",
			rankings: []dto.ProvinceRanking{
				{Province: "Chiang Mai", Rank: 1},
				{Province: "Phuket", Rank: 3},
			},
			wantErr: "out of range",
		},
		{
			name: "duplicate rank",
			rankings: []dto.ProvinceRanking{
				{Province: "Chiang Mai", Rank: 1},
				{Province: "Phuket", Rank: 1},
			},
			wantErr: "used more than once",
		},
		{
			name: "duplicate province case insensitive",
			rankings: []dto.ProvinceRanking{
				{Province: "Phuket", Rank: 1},
				{Province: "phuket", Rank: 2},
			},
			wantErr: "listed more than once",
		},
		{
			name: "blank province",
			rankings: []dto.ProvinceRanking{
				{Province: "  ", Rank: 1},
			},
			wantErr: "must not be empty",
		},
		{
			name:     "zero rank",
			rankings: []dto.ProvinceRanking{{Province: "Krabi", Rank: 0}},
			wantErr:  "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBallot(tt.rankings)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func ballot(userID uuid.UUID, provinces ...string) []models.ProvinceVote {
	votes := make([]models.ProvinceVote, 0, len(provinces))
	for i, p := range provinces {
		votes = append(votes, models.ProvinceVote{UserID: userID, Province: p, Rank: i + 1})
	}
	return votes
}

func TestBordaCount(t *testing.T) {
	userA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	userB := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("no votes", func(t *testing.T) {
		results, ballots := BordaCount(nil)
		assert.Empty(t, results)
		assert.Zero(t, ballots)
	})

	t.Run("points follow ballot size minus rank", func(t *testing.T) {
		// A: Chiang Mai > Phuket > Krabi, B: Phuket > Chiang Mai > Krabi
		votes := append(
			ballot(userA, "Chiang Mai", "Phuket", "Krabi"),
			ballot(userB, "Phuket", "Chiang Mai", "Krabi")...,
		)

		results, ballots := BordaCount(votes)

		assert.Equal(t, 2, ballots)
		require.Len(t, results, 3)
		// Both leaders hold 3 points; tie broken by first-place votes is
		// still level, so name order decides.
		assert.Equal(t, "Chiang Mai", results[0].Province)
		assert.Equal(t, 3, results[0].Points)
		assert.Equal(t, 1, results[0].FirstPlaceVotes)
		assert.Equal(t, "Phuket", results[1].Province)
		assert.Equal(t, 3, results[1].Points)
		assert.Equal(t, "Krabi", results[2].Province)
		assert.Equal(t, 0, results[2].Points)
	})

	t.Run("first place votes break point ties", func(t *testing.T) {
		// Phuket and Ayutthaya both finish on 1 point, but Phuket holds
		// a first-place vote, so it ranks ahead despite sorting after
		// Ayutthaya by name.
		votes := append(
			ballot(userA, "Phuket", "Krabi"),
			ballot(userB, "Krabi", "Ayutthaya", "Phuket")...,
		)

		results, ballots := BordaCount(votes)

		assert.Equal(t, 2, ballots)
		require.Len(t, results, 3)
		assert.Equal(t, "Krabi", results[0].Province)
		assert.Equal(t, 2, results[0].Points)
		assert.Equal(t, "Phuket", results[1].Province)
		assert.Equal(t, 1, results[1].Points)
		assert.Equal(t, 1, results[1].FirstPlaceVotes)
		assert.Equal(t, "Ayutthaya", results[2].Province)
		assert.Equal(t, 1, results[2].Points)
		assert.Equal(t, 0, results[2].FirstPlaceVotes)
	})

	t.Run("ballots of different sizes score independently", func(t *testing.T) {
		// A ranks three provinces, B ranks only one. B's lone pick earns
		// 0 points (1 - 1) but still records a first-place vote.
		votes := append(
			ballot(userA, "Chiang Mai", "Phuket", "Krabi"),
			ballot(userB, "Krabi")...,
		)

		results, ballots := BordaCount(votes)

		assert.Equal(t, 2, ballots)
		require.Len(t, results, 3)
		assert.Equal(t, "Chiang Mai", results[0].Province)
		assert.Equal(t, 2, results[0].Points)

		byName := make(map[string]dto.ProvinceResult, len(results))
		for _, r := range results {
			byName[r.Province] = r
		}
		assert.Equal(t, 0, byName["Krabi"].Points)
		assert.Equal(t, 1, byName["Krabi"].FirstPlaceVotes)
	})
}
