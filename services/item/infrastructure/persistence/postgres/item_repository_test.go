package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	itemmigrations "github.com/ghuser/menagerist/migrations/item"
	"github.com/ghuser/menagerist/pkg/config"
	"github.com/ghuser/menagerist/pkg/database"
	"github.com/ghuser/menagerist/pkg/logger"
	"github.com/ghuser/menagerist/pkg/migrator"
	domainevents "github.com/ghuser/menagerist/services/item/domain/events"
	"github.com/ghuser/menagerist/services/item/domain/models"
)

func TestNullString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, nullString(nil))
	s := ""
	assert.Equal(t, sql.NullString{String: "", Valid: true}, nullString(&s))
}

type rowStub struct{ err error }

func (r rowStub) Scan(...any) error { return r.err }

func TestScanItem_PropagatesNoRows(t *testing.T) {
	_, err := scanItem(rowStub{err: sql.ErrNoRows})
	require.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestUpsertEvent(t *testing.T) {
	desc := "TOS - The Menagerie"
	item, err := models.NewItem("Vintage Laserdisc", &desc)
	require.NoError(t, err)

	topic, eventID, payload := upsertEvent(item, true)
	assert.Equal(t, domainevents.TopicItemCreated, topic)
	created, ok := payload.(domainevents.ItemCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, eventID, created.EventID)
	assert.Equal(t, item.ID().UUID(), created.ItemID)
	assert.Equal(t, &desc, created.Description)

	topic, eventID, payload = upsertEvent(item, false)
	assert.Equal(t, domainevents.TopicItemUpdated, topic)
	updated, ok := payload.(domainevents.ItemUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, eventID, updated.EventID)
	assert.Equal(t, "Vintage Laserdisc", updated.Name)
}

// ItemRepositorySuite runs against a real database and is skipped unless
// DATABASE_URL is set.
type ItemRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *database.Database
	uow  *database.UnitOfWork
	repo *ItemRepository
}

func TestItemRepositorySuite(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set; skipping postgres repository tests")
	}
	suite.Run(t, new(ItemRepositorySuite))
}

func (s *ItemRepositorySuite) SetupSuite() {
	url := os.Getenv("DATABASE_URL")
	s.ctx = context.Background()
	log := logger.New(&config.Config{LogLevel: "error"})

	db, err := database.NewPool(s.ctx, url, log)
	s.Require().NoError(err)
	s.Require().NoError(migrator.Up(s.ctx, db.DB(), itemmigrations.FS, log))
	s.db = db
	s.uow = database.NewUnitOfWork(db)
	s.repo = NewItemRepository(db, nil)
}

func (s *ItemRepositorySuite) TearDownSuite() {
	_ = s.db.Close()
}

func (s *ItemRepositorySuite) SetupTest() {
	_, err := s.db.DB().ExecContext(s.ctx, `TRUNCATE items`)
	s.Require().NoError(err)
}

func (s *ItemRepositorySuite) TestAddGetRoundTrip() {
	desc := "TOS - The Menagerie"
	it, err := models.NewItem("Vintage Laserdisc", &desc)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Add(s.ctx, it))

	got, ok, err := s.repo.GetByID(s.ctx, it.ID())
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(it, got)
}

func (s *ItemRepositorySuite) TestNullDescriptionSurvives() {
	it, err := models.NewItem("no description", nil)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Add(s.ctx, it))

	got, ok, err := s.repo.GetByID(s.ctx, it.ID())
	s.Require().NoError(err)
	s.True(ok)
	s.Nil(got.DescriptionPtr())
}

func (s *ItemRepositorySuite) TestAddOverwrites() {
	it, err := models.NewItem("before", nil)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Add(s.ctx, it))

	renamed, err := models.LoadItem(it.ID(), "after", nil)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Add(s.ctx, renamed))

	all, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]models.Item{renamed}, all)
}

func (s *ItemRepositorySuite) TestUpsertReportsInsertOnlyOnce() {
	it, err := models.NewItem("Tricorder", nil)
	s.Require().NoError(err)

	upsert := func() bool {
		var inserted bool
		s.Require().NoError(s.db.DB().QueryRowContext(s.ctx, upsertItemSQL,
			it.ID().UUID(), it.Name().String(), nullString(nil),
		).Scan(&inserted))
		return inserted
	}

	s.True(upsert(), "first write is an insert")
	s.False(upsert(), "second write overwrites")
}

func (s *ItemRepositorySuite) TestListAllOrderedByID() {
	var want []models.Item
	for _, name := range []string{"a", "b", "c"} {
		it, err := models.NewItem(name, nil)
		s.Require().NoError(err)
		s.Require().NoError(s.repo.Add(s.ctx, it))
		want = append(want, it)
	}

	got, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *ItemRepositorySuite) TestDeleteIsIdempotent() {
	it, err := models.NewItem("gone", nil)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Add(s.ctx, it))

	deleted, ok, err := s.repo.DeleteByID(s.ctx, it.ID())
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(it, deleted)

	_, ok, err = s.repo.DeleteByID(s.ctx, it.ID())
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ItemRepositorySuite) TestUnitOfWorkRollbackDiscardsAdd() {
	it, err := models.NewItem("rolled back", nil)
	s.Require().NoError(err)
	boom := errors.New("boom")

	err = s.uow.Do(s.ctx, func(ctx context.Context) error {
		if err := s.repo.Add(ctx, it); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	_, ok, err := s.repo.GetByID(s.ctx, it.ID())
	s.Require().NoError(err)
	s.False(ok)
}
