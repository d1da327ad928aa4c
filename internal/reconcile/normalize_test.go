package reconcile_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/reconcile"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain code", "CBA", "CBA"},
		{"lowercase", "cba", "CBA"},
		{"exchange prefix", "ASX:CBA", "CBA"},
		{"lowercase prefix", "asx:cba", "CBA"},
		{"suffix", "CBA.AX", "CBA"},
		{"lowercase suffix", "bhp.ax", "BHP"},
		{"prefix and suffix", "ASX:WES.AX", "WES"},
		{"surrounding whitespace", "  nab  ", "NAB"},
		{"whitespace after prefix", "ASX: CBA ", "CBA"},
		{"repeated prefix", "ASX:ASX:CBA", "CBA"},
		{"empty", "", ""},
		{"only prefix", "ASX:", ""},
		{"suffix only", ".AX", ""},
		{"inner marker kept", "AASX:B", "AASX:B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.Normalize(tt.raw))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"CBA", "cba", "ASX:CBA", "cba.ax", " asx:bhp.AX ", "ASX:ASX:CBA.AX.AX",
		"ASX: .AX", "  ", "A", "asx:a", "xyz.ax ", "ASX:.AX:ASX", "\tWES\n",
	}
	for _, in := range inputs {
		once := reconcile.Normalize(in)
		assert.Equal(t, once, reconcile.Normalize(once), "input %q", in)
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts valid record", func(t *testing.T) {
		out := reconcile.Validate(model.ParsedRecord{Code: "asx:cba", Quantity: 10})
		assert.True(t, out.Valid)
		assert.Equal(t, "CBA", out.NormalizedCode)
		assert.Empty(t, out.Reason)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		out := reconcile.Validate(model.ParsedRecord{Code: "ASX:", Quantity: 10})
		assert.False(t, out.Valid)
		assert.Equal(t, model.SkipInvalidCode, out.Reason)
	})

	t.Run("rejects single character code", func(t *testing.T) {
		out := reconcile.Validate(model.ParsedRecord{Code: "a.ax", Quantity: 10})
		assert.False(t, out.Valid)
		assert.Equal(t, model.SkipInvalidCode, out.Reason)
	})

	t.Run("checks code before quantity", func(t *testing.T) {
		out := reconcile.Validate(model.ParsedRecord{Code: "", Quantity: -1})
		assert.Equal(t, model.SkipInvalidCode, out.Reason)
	})

	for _, q := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		out := reconcile.Validate(model.ParsedRecord{Code: "BHP", Quantity: q})
		assert.False(t, out.Valid)
		assert.Equal(t, model.SkipNonPositiveQuantity, out.Reason, "quantity %v", q)
	}
}
