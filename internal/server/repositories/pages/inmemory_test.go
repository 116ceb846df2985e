package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysolovyov/knorozov/internal/common"
)

func TestInMemoryCreateDuplicate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "home")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "home")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestInMemoryAddEntryKeepsOrder(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "home")
	require.NoError(t, err)

	require.NoError(t, repo.AddEntry(ctx, "home", "title"))
	require.NoError(t, repo.AddEntry(ctx, "home", "subtitle"))
	require.NoError(t, repo.AddEntry(ctx, "home", "title")) // duplicate key is ignored

	page, err := repo.GetByName(ctx, "home")
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "title", page.Entries[0].Key)
	assert.Equal(t, "subtitle", page.Entries[1].Key)
}

func TestInMemoryAddEntryMissingPage(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.AddEntry(ctx, "ghost", "title"))

	_, err := repo.GetByName(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemorySetTranslationMerges(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "home")
	require.NoError(t, err)
	require.NoError(t, repo.AddEntry(ctx, "home", "title"))

	require.NoError(t, repo.SetTranslation(ctx, "home", "title", "fr", "Accueil"))
	require.NoError(t, repo.SetTranslation(ctx, "home", "title", "de", "Startseite"))
	require.NoError(t, repo.SetTranslation(ctx, "home", "title", "fr", "Bienvenue"))

	page, err := repo.GetByName(ctx, "home")
	require.NoError(t, err)
	entry := page.Entry("title")
	require.NotNil(t, entry)
	assert.Equal(t, "Bienvenue", entry.Translations["fr"])
	assert.Equal(t, "Startseite", entry.Translations["de"])
}

func TestInMemoryRemoveEntry(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "home")
	require.NoError(t, err)
	require.NoError(t, repo.AddEntry(ctx, "home", "title"))
	require.NoError(t, repo.AddEntry(ctx, "home", "subtitle"))

	require.NoError(t, repo.RemoveEntry(ctx, "home", "title"))
	require.NoError(t, repo.RemoveEntry(ctx, "home", "missing"))

	page, err := repo.GetByName(ctx, "home")
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "subtitle", page.Entries[0].Key)
}

func TestInMemoryGetReturnsCopy(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "home")
	require.NoError(t, err)
	require.NoError(t, repo.AddEntry(ctx, "home", "title"))

	page, err := repo.GetByName(ctx, "home")
	require.NoError(t, err)
	page.Entry("title").Translations["fr"] = "mutated"

	fresh, err := repo.GetByName(ctx, "home")
	require.NoError(t, err)
	assert.Empty(t, fresh.Entry("title").Translations)
}
