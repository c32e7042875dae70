package stockquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimart-assistant/internal/catalog"
)

func testStores() []catalog.Store {
	return []catalog.Store{
		{ID: "st-acacia", DisplayName: "99 Speedmart Acacia"},
		{ID: "st-desa-jati", DisplayName: "99 Speedmart Desa Jati"},
	}
}

func nilaiStores() []catalog.Store {
	return []catalog.Store{
		{ID: "st-acacia-nilai", DisplayName: "99 Speedmart Acacia Nilai"},
		{ID: "st-desa-jati-nilai", DisplayName: "99 Speedmart Desa Jati Nilai"},
	}
}

func TestResolve_TokenSetContainment(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		stores     []catalog.Store
		wantStatus Status
		wantID     string
	}{
		{
			name:       "distinguishing token picks the right store",
			query:      "99 Speedmart Acacia",
			stores:     testStores(),
			wantStatus: StatusResolvedSingle,
			wantID:     "st-acacia",
		},
		{
			name:       "multi-word distinguishing tokens pick the other store",
			query:      "99 Speedmart Desa Jati",
			stores:     testStores(),
			wantStatus: StatusResolvedSingle,
			wantID:     "st-desa-jati",
		},
		{
			name:       "all four tokens required resolves uniquely despite shared prefix",
			query:      "99 Speedmart Acacia Nilai",
			stores:     nilaiStores(),
			wantStatus: StatusResolvedSingle,
			wantID:     "st-acacia-nilai",
		},
		{
			name:       "broad query matching every store is ambiguous, not an error",
			query:      "99 Speedmart",
			stores:     testStores(),
			wantStatus: StatusResolvedAmbiguous,
		},
		{
			name:       "shared token across two stores is ambiguous",
			query:      "Acacia",
			stores:     []catalog.Store{{ID: "a", DisplayName: "99 Speedmart Acacia"}, {ID: "b", DisplayName: "99 Speedmart Acacia Nilai"}},
			wantStatus: StatusResolvedAmbiguous,
		},
		{
			name:       "no match in either phase",
			query:      "99 Speedmart Nonexistent Store",
			stores:     testStores(),
			wantStatus: StatusNotFound,
		},
		{
			name:       "empty query was not requested",
			query:      "",
			stores:     testStores(),
			wantStatus: StatusNotRequested,
		},
		{
			name:       "blank query was not requested",
			query:      "   ",
			stores:     testStores(),
			wantStatus: StatusNotRequested,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.query, tt.stores)
			assert.Equal(t, tt.wantStatus, res.Status)
			if tt.wantID != "" {
				require.Len(t, res.Candidates, 1)
				assert.Equal(t, tt.wantID, res.Candidates[0].Entity.ID)
				assert.Equal(t, MatchExactTokenSet, res.Candidates[0].Kind)
				assert.Equal(t, len(Tokens(tt.query)), res.Candidates[0].MatchedTokenCount)
			}
		})
	}
}

func TestResolve_SubstringFallback(t *testing.T) {
	stores := []catalog.Store{
		{ID: "st-acacia", DisplayName: "99 Speedmart Acacia, Nilai"},
		{ID: "st-desa-jati", DisplayName: "99 Speedmart Desa Jati, Nilai"},
	}

	t.Run("partial word falls back to substring", func(t *testing.T) {
		res := Resolve("Acacia", stores)
		require.Equal(t, StatusResolvedSingle, res.Status)
		assert.Equal(t, "st-acacia", res.Candidates[0].Entity.ID)
		assert.Equal(t, MatchSubstringFallback, res.Candidates[0].Kind)
	})

	t.Run("comma in the stored name is absorbed by the fallback", func(t *testing.T) {
		// "acacia," is a distinct token from "acacia", so Phase A finds
		// nothing; the canonical query is still a prefix of the name.
		res := Resolve("99 Speedmart Acacia", stores)
		require.Equal(t, StatusResolvedSingle, res.Status)
		assert.Equal(t, "st-acacia", res.Candidates[0].Entity.ID)
		assert.Equal(t, MatchSubstringFallback, res.Candidates[0].Kind)
	})

	t.Run("substring check runs in both directions", func(t *testing.T) {
		res := Resolve("Speedmart Acacia, Nilai", stores)
		require.Equal(t, StatusResolvedSingle, res.Status, "query is a substring of the full name")
		assert.Equal(t, "st-acacia", res.Candidates[0].Entity.ID)

		res = Resolve("99 Speedmart Acacia, Nilai branch", stores)
		require.Equal(t, StatusResolvedSingle, res.Status, "full name is a substring of the query")
		assert.Equal(t, "st-acacia", res.Candidates[0].Entity.ID)

		res = Resolve("the Acacia branch near the highway", stores)
		assert.Equal(t, StatusNotFound, res.Status, "neither direction contains the other")
	})

	t.Run("fallback with several hits is ambiguous with catalog-order primary", func(t *testing.T) {
		res := Resolve("Nilai", stores)
		require.Equal(t, StatusResolvedAmbiguous, res.Status)
		primary, ok := res.Primary()
		require.True(t, ok)
		assert.Equal(t, "st-acacia", primary.ID, "first candidate in catalog order is primary")
		assert.Equal(t, []string{"99 Speedmart Acacia, Nilai", "99 Speedmart Desa Jati, Nilai"}, res.CandidateNames())
	})
}

func TestResolve_Idempotent(t *testing.T) {
	stores := testStores()
	first := Resolve("99 Speedmart", stores)
	second := Resolve("99 Speedmart", stores)
	assert.Equal(t, first, second)
}

func TestResolve_UniqueSupersetProperty(t *testing.T) {
	// For any store whose token set is the only superset of the query's
	// tokens, resolution must be RESOLVED_SINGLE for that store.
	stores := nilaiStores()
	queries := []string{
		"acacia",
		"ACACIA nilai",
		"speedmart acacia",
		"99 acacia",
		"nilai acacia speedmart 99",
	}
	for _, q := range queries {
		res := Resolve(q, stores)
		require.Equal(t, StatusResolvedSingle, res.Status, "query %q", q)
		assert.Equal(t, "st-acacia-nilai", res.Candidates[0].Entity.ID, "query %q", q)
	}
}
