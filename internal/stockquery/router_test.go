package stockquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "minimart-assistant/internal/common/errors"
	"minimart-assistant/internal/common/logger"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	return New(cfg, logger.NewTestLogger(t))
}

func TestEngine_Handle(t *testing.T) {
	snap := testSnapshot()
	engine := newTestEngine(t, DefaultConfig())

	t.Run("product and location answer a single stock question", func(t *testing.T) {
		text, res := engine.Handle(Query{
			Intent:       IntentStockQuery,
			Product:      "Oil Packet 1KG",
			Location:     "99 Speedmart Acacia",
			RawQueryText: "Do you have Oil Packet 1KG at 99 Speedmart Acacia?",
		}, snap)
		require.Equal(t, ResultSingle, res.Kind)
		assert.Equal(t, "Yes, Oil Packet 1KG is available at 99 Speedmart Acacia, but stock is low: only 3 left.", text)
	})

	t.Run("product only produces the per-store report", func(t *testing.T) {
		text, res := engine.Handle(Query{Intent: IntentStockQuery, Product: "Oil Packet 1KG"}, snap)
		require.Equal(t, ResultPerStore, res.Kind)
		assert.Equal(t, "Oil Packet 1KG is carried at 2 stores:\n"+
			"- 99 Speedmart Acacia: 3 left (low stock)\n"+
			"- 99 Speedmart Desa Jati: 12 in stock", text)
	})

	t.Run("location only produces the store summary", func(t *testing.T) {
		text, res := engine.Handle(Query{Intent: IntentStoreStatus, Location: "Acacia"}, snap)
		require.Equal(t, ResultSummary, res.Kind)
		assert.Equal(t, "99 Speedmart Acacia carries 3 items.\n"+
			"Out of stock (1): Sugar 1KG\n"+
			"Low on stock (1): Oil Packet 1KG", text)
	})

	t.Run("ambiguous location-only query asks for clarification", func(t *testing.T) {
		text, res := engine.Handle(Query{Intent: IntentStoreStatus, Location: "99 Speedmart"}, snap)
		require.Equal(t, ResultError, res.Kind)
		assert.Equal(t, apperrors.ErrCodeAmbiguousLocation, res.Code)
		assert.Contains(t, text, "Which one do you mean?")
	})

	t.Run("no parameters means help without touching the catalog", func(t *testing.T) {
		// A nil snapshot proves the help path never reads catalog data.
		text, res := engine.Handle(Query{Intent: IntentWelcome}, nil)
		assert.Equal(t, ResultHelp, res.Kind)
		assert.Equal(t, ComposeHelp(), text)
	})

	t.Run("whitespace parameters are treated as absent", func(t *testing.T) {
		_, res := engine.Handle(Query{Product: "   ", Location: "\t"}, nil)
		assert.Equal(t, ResultHelp, res.Kind)
	})
}

func TestEngine_AssumeFirstSummary(t *testing.T) {
	snap := testSnapshot()
	engine := newTestEngine(t, Config{AmbiguityPolicy: PolicyAssumeFirst, SummaryLimit: 5})

	text, res := engine.Handle(Query{Intent: IntentStoreStatus, Location: "99 Speedmart"}, snap)
	require.Equal(t, ResultSummary, res.Kind)
	assert.Equal(t, "99 Speedmart Acacia", res.AssumedStore)
	assert.Contains(t, text, "Assuming you mean 99 Speedmart Acacia.\n")
	assert.Contains(t, text, "99 Speedmart Acacia carries 3 items.")
}

func TestNew_AppliesDefaults(t *testing.T) {
	engine := newTestEngine(t, Config{})
	assert.Equal(t, PolicyClarify, engine.cfg.AmbiguityPolicy)
	assert.Equal(t, 5, engine.cfg.SummaryLimit)
}
