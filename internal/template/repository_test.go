package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestTemplate(t *testing.T) {
	t.Run("empty repository returns nil", func(t *testing.T) {
		repo := NewRepository()
		assert.Nil(t, repo.BestTemplate("anything"))
	})

	t.Run("single template wins regardless of score", func(t *testing.T) {
		repo := NewRepository()
		zero := NewRegexTemplate("no-keywords", nil, nil)
		repo.Add(zero)
		got := repo.BestTemplate("unrelated text")
		require.NotNil(t, got)
		assert.Equal(t, "no-keywords", got.Name())
	})

	t.Run("higher score wins", func(t *testing.T) {
		repo := NewRepository()
		repo.Add(NewRegexTemplate("partial", []string{"invoice", "fabrikam"}, nil))
		repo.Add(NewRegexTemplate("full", []string{"invoice", "northwind"}, nil))
		got := repo.BestTemplate("Northwind Traders\nInvoice #: 1")
		require.NotNil(t, got)
		assert.Equal(t, "full", got.Name())
	})

	t.Run("tie keeps the first added", func(t *testing.T) {
		repo := NewRepository()
		repo.Add(NewRegexTemplate("first", []string{"invoice"}, nil))
		repo.Add(NewRegexTemplate("second", []string{"invoice"}, nil))
		got := repo.BestTemplate("An invoice")
		require.NotNil(t, got)
		assert.Equal(t, "first", got.Name())
	})
}

func TestAddAndExtendKeepDuplicates(t *testing.T) {
	repo := NewRepository()
	a := NewRegexTemplate("dup", []string{"alpha"}, nil)
	b := NewRegexTemplate("dup", []string{"alpha", "beta"}, nil)
	repo.Add(a)
	repo.Extend([]Template{b})
	assert.Equal(t, 2, repo.Len())

	// the duplicate name can still win with a strictly higher score
	got := repo.BestTemplate("alpha beta")
	require.NotNil(t, got)
	assert.Same(t, b, got)
}
