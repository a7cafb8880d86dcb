package directory

import (
	"context"
	"sync"
	"testing"
	"time"

	"shopspotlight/models"
	"shopspotlight/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeShopRepo serves a fixed shop list, newest first.
type fakeShopRepo struct {
	mu    sync.Mutex
	shops []models.Shop
}

func (f *fakeShopRepo) GetAll() ([]models.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Shop, len(f.shops))
	copy(out, f.shops)
	return out, nil
}

func (f *fakeShopRepo) setShops(shops []models.Shop) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shops = shops
}

func (f *fakeShopRepo) GetByID(id string) (*models.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.shops {
		if f.shops[i].ID == id {
			s := f.shops[i]
			return &s, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeShopRepo) GetByOwner(string) (*models.Shop, error) { return nil, mongo.ErrNoDocuments }
func (f *fakeShopRepo) GetByIDs([]string) ([]models.Shop, error) {
	return nil, nil
}
func (f *fakeShopRepo) Create(*models.Shop) error               { return nil }
func (f *fakeShopRepo) UpdateFields(string, bson.M) error       { return nil }
func (f *fakeShopRepo) Delete(string) error                     { return nil }
func (f *fakeShopRepo) ReplaceServices(string, []models.ServiceEntry, int64) error {
	return nil
}

func coord(v float64) *float64 { return &v }

func testShops() []models.Shop {
	// Newest first, as the store returns them.
	return []models.Shop{
		{ID: "s3", Name: "Corner Cafe", Address: "12 Hill Road", Status: models.StatusBusy,
			Latitude: coord(51.5100), Longitude: coord(-0.1280)},
		{ID: "s2", Name: "Joe's Barbershop", Address: "3 Main Street", Status: models.StatusOpen,
			Latitude: coord(51.5075), Longitude: coord(-0.1279)},
		{ID: "s1", Name: "Quick Fix Repairs", Address: "Barber Lane 9", Status: models.StatusClosed},
	}
}

func newTestView(t *testing.T) (*View, *fakeShopRepo, *realtime.MemoryHub) {
	t.Helper()
	repo := &fakeShopRepo{shops: testShops()}
	hub := realtime.NewMemoryHub()
	snap, err := NewSnapshot(context.Background(), repo, hub)
	if err != nil {
		t.Fatalf("failed to build snapshot: %v", err)
	}
	t.Cleanup(snap.Close)
	return NewView(snap), repo, hub
}

func ids(shops []models.Shop) []string {
	out := make([]string, len(shops))
	for i, s := range shops {
		out[i] = s.ID
	}
	return out
}

func TestViewTermMatchesNameOrAddress(t *testing.T) {
	v, _, _ := newTestView(t)

	v.SetTerm("BARBER")
	got := ids(v.Results())
	// s2 matches on name, s1 on address; source order preserved.
	if len(got) != 2 || got[0] != "s2" || got[1] != "s1" {
		t.Fatalf("expected [s2 s1], got %v", got)
	}

	v.SetTerm("")
	if got := v.Results(); len(got) != 3 {
		t.Fatalf("empty term should match all shops, got %d", len(got))
	}
}

func TestViewStatusFilterToggles(t *testing.T) {
	v, _, _ := newTestView(t)

	v.SetStatusFilter(models.StatusOpen)
	got := ids(v.Results())
	if len(got) != 1 || got[0] != "s2" {
		t.Fatalf("expected only the open shop, got %v", got)
	}

	// Selecting the same status again clears the filter.
	v.SetStatusFilter(models.StatusOpen)
	if got := v.Results(); len(got) != 3 {
		t.Fatalf("re-selecting the status should clear the filter, got %d shops", len(got))
	}
}

func TestViewNearbyFiltersByRadiusAndCoordinates(t *testing.T) {
	v, _, _ := newTestView(t)

	// Center right next to s2; s3 is ~0.3 km away, s1 has no coordinates.
	v.EnableNearby(models.Coordinate{Latitude: 51.5074, Longitude: -0.1278})
	got := ids(v.Results())
	if len(got) != 2 || got[0] != "s3" || got[1] != "s2" {
		t.Fatalf("expected [s3 s2] within 1 km, got %v", got)
	}

	// A distant center excludes everything with coordinates too.
	v.EnableNearby(models.Coordinate{Latitude: 48.8566, Longitude: 2.3522})
	if got := v.Results(); len(got) != 0 {
		t.Fatalf("expected no shops near Paris, got %v", ids(got))
	}
}

func TestViewStatusAndNearbyAreExclusive(t *testing.T) {
	v, _, _ := newTestView(t)

	v.SetStatusFilter(models.StatusOpen)
	v.EnableNearby(models.Coordinate{Latitude: 51.5074, Longitude: -0.1278})
	got := ids(v.Results())
	// Nearby replaced the status filter: the busy s3 is back in.
	if len(got) != 2 || got[0] != "s3" {
		t.Fatalf("enabling nearby should drop the status filter, got %v", got)
	}

	v.SetStatusFilter(models.StatusBusy)
	got = ids(v.Results())
	if len(got) != 1 || got[0] != "s3" {
		t.Fatalf("status filter should drop nearby, got %v", got)
	}
}

func TestViewDisableNearbyForgetsCoordinate(t *testing.T) {
	v, _, _ := newTestView(t)

	v.EnableNearby(models.Coordinate{Latitude: 51.5074, Longitude: -0.1278})
	v.DisableNearby()
	if got := v.Results(); len(got) != 3 {
		t.Fatalf("disabling nearby should show all shops, got %d", len(got))
	}
}

func TestSnapshotRefetchesOnChangeEvent(t *testing.T) {
	v, repo, hub := newTestView(t)

	shops := append([]models.Shop{
		{ID: "s4", Name: "New Nails", Address: "7 River Walk", Status: models.StatusOpen},
	}, testShops()...)
	repo.setShops(shops)

	err := hub.Publish(context.Background(), realtime.Event{
		Collection: realtime.CollectionShops,
		Action:     realtime.ActionInsert,
		RowID:      "s4",
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := v.Results(); len(got) == 4 && got[0].ID == "s4" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("snapshot never picked up the inserted shop; have %v", ids(v.Results()))
}
