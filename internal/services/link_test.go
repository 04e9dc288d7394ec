package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Ravindra230104/EduGather-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func setupLinkService(t *testing.T) *LinkService {
	t.Helper()
	return NewLinkService(setupTestDB(t), nil)
}

func TestLinkCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults and slug", func(t *testing.T) {
		svc := setupLinkService(t)
		author := seedUser(t, svc.db, "author@example.com", models.RoleUser)
		category := seedCategory(t, svc.db, "Rust")

		link, err := svc.Create(ctx, author.ID, LinkDTO{
			Title:      "Intro to Rust",
			URL:        "https://example.com/rust",
			Categories: []uint{category.ID},
		})
		assert.NoError(t, err)
		assert.Equal(t, "intro-to-rust", link.Slug)
		assert.Equal(t, "Free", link.Type)
		assert.Equal(t, "Video", link.Medium)
		assert.Zero(t, link.Clicks)
		assert.False(t, link.Approved)
		assert.Len(t, link.Categories, 1)
	})

	t.Run("Duplicate title rejected", func(t *testing.T) {
		svc := setupLinkService(t)
		author := seedUser(t, svc.db, "author@example.com", models.RoleUser)

		_, err := svc.Create(ctx, author.ID, LinkDTO{Title: "Same Title", URL: "https://a.example"})
		assert.NoError(t, err)

		_, err = svc.Create(ctx, author.ID, LinkDTO{Title: "same title!", URL: "https://b.example"})
		assert.ErrorIs(t, err, ErrSlugTaken)
	})
}

func TestLinkRead(t *testing.T) {
	ctx := context.Background()
	svc := setupLinkService(t)
	author := seedUser(t, svc.db, "author@example.com", models.RoleUser)

	created, err := svc.Create(ctx, author.ID, LinkDTO{Title: "Readable", URL: "https://example.com"})
	assert.NoError(t, err)

	t.Run("By slug", func(t *testing.T) {
		link, err := svc.Read(ctx, created.Slug)
		assert.NoError(t, err)
		assert.Equal(t, created.ID, link.ID)
		assert.Equal(t, author.ID, link.PostedBy.ID)
	})

	t.Run("Unknown slug", func(t *testing.T) {
		_, err := svc.Read(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLinkUpdate(t *testing.T) {
	ctx := context.Background()
	svc := setupLinkService(t)
	author := seedUser(t, svc.db, "author@example.com", models.RoleUser)
	first := seedCategory(t, svc.db, "First")
	second := seedCategory(t, svc.db, "Second")

	link, err := svc.Create(ctx, author.ID, LinkDTO{
		Title:      "Original Title",
		URL:        "https://example.com/original",
		Categories: []uint{first.ID},
	})
	assert.NoError(t, err)

	updated, err := svc.Update(ctx, link.ID, LinkDTO{
		Title:      "Updated Title",
		URL:        "https://example.com/updated",
		Type:       "Paid",
		Medium:     "Book",
		Categories: []uint{second.ID},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "Paid", updated.Type)
	assert.Equal(t, "Book", updated.Medium)
	// Slug is frozen at creation.
	assert.Equal(t, "original-title", updated.Slug)
	assert.Len(t, updated.Categories, 1)
	assert.Equal(t, second.ID, updated.Categories[0].ID)

	_, err = svc.Update(ctx, 9999, LinkDTO{Title: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLinkRemove(t *testing.T) {
	ctx := context.Background()
	svc := setupLinkService(t)
	author := seedUser(t, svc.db, "author@example.com", models.RoleUser)
	category := seedCategory(t, svc.db, "Trash")

	link, err := svc.Create(ctx, author.ID, LinkDTO{
		Title:      "Short Lived",
		URL:        "https://example.com",
		Categories: []uint{category.ID},
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.Remove(ctx, link.ID))
	assert.ErrorIs(t, svc.Remove(ctx, link.ID), ErrNotFound)

	var count int64
	svc.db.Model(&models.Link{}).Count(&count)
	assert.Zero(t, count)
}

func TestIncrementClicks(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing id does not create a skeleton link", func(t *testing.T) {
		svc := setupLinkService(t)

		_, err := svc.IncrementClicks(ctx, 12345)
		assert.ErrorIs(t, err, ErrNotFound)

		var count int64
		svc.db.Model(&models.Link{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("Concurrent increments are all reflected", func(t *testing.T) {
		svc := setupLinkService(t)
		author := seedUser(t, svc.db, "author@example.com", models.RoleUser)
		link, err := svc.Create(ctx, author.ID, LinkDTO{Title: "Hot Link", URL: "https://example.com"})
		assert.NoError(t, err)

		const clicks = 10
		var wg sync.WaitGroup
		wg.Add(clicks)
		for i := 0; i < clicks; i++ {
			go func() {
				defer wg.Done()
				_, err := svc.IncrementClicks(ctx, link.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := svc.Read(ctx, link.Slug)
		assert.NoError(t, err)
		assert.Equal(t, clicks, got.Clicks)
	})
}

func TestPopular(t *testing.T) {
	ctx := context.Background()
	svc := setupLinkService(t)
	author := seedUser(t, svc.db, "author@example.com", models.RoleUser)
	hot := seedCategory(t, svc.db, "Hot")

	titles := []string{"First", "Second", "Third", "Fourth"}
	for i, title := range titles {
		dto := LinkDTO{Title: title, URL: "https://example.com/" + title}
		if title != "Fourth" {
			dto.Categories = []uint{hot.ID}
		}
		link, err := svc.Create(ctx, author.ID, dto)
		assert.NoError(t, err)
		svc.db.Model(link).UpdateColumn("clicks", (i+1)*10)
	}

	t.Run("Global top three by clicks", func(t *testing.T) {
		links, err := svc.Popular(ctx)
		assert.NoError(t, err)
		assert.Len(t, links, 3)
		assert.Equal(t, "Fourth", links[0].Title)
		assert.Equal(t, "Third", links[1].Title)
		assert.Equal(t, "Second", links[2].Title)
	})

	t.Run("Scoped to category", func(t *testing.T) {
		links, err := svc.PopularInCategory(ctx, "hot")
		assert.NoError(t, err)
		assert.Len(t, links, 3)
		assert.Equal(t, "Third", links[0].Title)
	})

	t.Run("Unknown category", func(t *testing.T) {
		_, err := svc.PopularInCategory(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestApproval(t *testing.T) {
	ctx := context.Background()
	svc := setupLinkService(t)
	author := seedUser(t, svc.db, "author@example.com", models.RoleUser)

	link, err := svc.Create(ctx, author.ID, LinkDTO{Title: "Pending", URL: "https://example.com"})
	assert.NoError(t, err)

	unapproved, err := svc.ListUnapproved(ctx)
	assert.NoError(t, err)
	assert.Len(t, unapproved, 1)

	approved, err := svc.Approve(ctx, link.ID)
	assert.NoError(t, err)
	assert.True(t, approved.Approved)

	unapproved, err = svc.ListUnapproved(ctx)
	assert.NoError(t, err)
	assert.Empty(t, unapproved)

	_, err = svc.Approve(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
