package shop

import (
	"errors"
	"sync"
	"testing"

	shopRepo "shopspotlight/database/repository/shop"
	"shopspotlight/models"
	"shopspotlight/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// memShopRepo is an in-memory ShopRepository with version-conditional
// catalog writes, mirroring the Mongo implementation's semantics.
type memShopRepo struct {
	mu    sync.Mutex
	shops map[string]*models.Shop

	// conflictsLeft makes the next N ReplaceServices calls lose the version
	// race regardless of the version passed.
	conflictsLeft int
}

func newMemShopRepo() *memShopRepo {
	return &memShopRepo{shops: make(map[string]*models.Shop)}
}

func (r *memShopRepo) GetByID(id string) (*models.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shops[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memShopRepo) GetByOwner(ownerID string) (*models.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shops {
		if s.OwnerID == ownerID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memShopRepo) GetAll() ([]models.Shop, error)           { return nil, nil }
func (r *memShopRepo) GetByIDs([]string) ([]models.Shop, error) { return nil, nil }

func (r *memShopRepo) Create(s *models.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.shops[s.ID] = &cp
	return nil
}

func (r *memShopRepo) UpdateFields(id string, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shops[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := fields["status"]; ok {
		s.Status = v.(models.ShopStatus)
	}
	if v, ok := fields["name"]; ok {
		s.Name = v.(string)
	}
	if v, ok := fields["latitude"]; ok {
		s.Latitude, _ = v.(*float64)
	}
	if v, ok := fields["longitude"]; ok {
		s.Longitude, _ = v.(*float64)
	}
	return nil
}

func (r *memShopRepo) ReplaceServices(id string, services []models.ServiceEntry, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shops[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		s.Version++ // a concurrent writer got there first
		return shopRepo.ErrVersionConflict
	}
	if s.Version != expectedVersion {
		return shopRepo.ErrVersionConflict
	}
	s.Services = services
	s.Version++
	return nil
}

func (r *memShopRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shops, id)
	return nil
}

func newTestShopService() (*DefaultShopService, *memShopRepo) {
	repo := newMemShopRepo()
	return &DefaultShopService{Repo: repo, Hub: realtime.NewMemoryHub()}, repo
}

func createTestShop(t *testing.T, svc *DefaultShopService, ownerID string) *models.Shop {
	t.Helper()
	s, err := svc.Create(ownerID, CreateRequest{Name: "Joe's Barbershop", Address: "3 Main Street"})
	if err != nil {
		t.Fatalf("create shop failed: %v", err)
	}
	return s
}

func TestCreateShopRejectsSecondShop(t *testing.T) {
	svc, _ := newTestShopService()
	createTestShop(t, svc, "owner-1")

	_, err := svc.Create("owner-1", CreateRequest{Name: "Second Shop", Address: "9 Other Road"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("second shop for the same owner should fail, got %v", err)
	}
}

func TestCreateShopStartsClosed(t *testing.T) {
	svc, _ := newTestShopService()
	s := createTestShop(t, svc, "owner-1")
	if s.Status != models.StatusClosed {
		t.Fatalf("new shop should start closed, got %s", s.Status)
	}
	if len(s.Services) != 0 {
		t.Fatalf("new shop should have an empty catalog, got %d entries", len(s.Services))
	}
}

func TestCreateShopRejectsHalfCoordinate(t *testing.T) {
	svc, _ := newTestShopService()
	lat := 51.5
	_, err := svc.Create("owner-1", CreateRequest{
		Name: "Half Located", Address: "1 Somewhere", Latitude: &lat,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("latitude without longitude should fail, got %v", err)
	}
}

func TestUpdateStatusValidatesAndApplies(t *testing.T) {
	svc, repo := newTestShopService()
	s := createTestShop(t, svc, "owner-1")

	var verr *ValidationError
	if err := svc.UpdateStatus("owner-1", models.ShopStatus("swamped")); !errors.As(err, &verr) {
		t.Fatalf("unknown status should fail, got %v", err)
	}
	if err := svc.UpdateStatus("owner-2", models.StatusOpen); !errors.As(err, &verr) {
		t.Fatalf("shopless owner should fail, got %v", err)
	}

	if err := svc.UpdateStatus("owner-1", models.StatusBusy); err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	got, _ := repo.GetByID(s.ID)
	if got.Status != models.StatusBusy {
		t.Fatalf("expected busy, got %s", got.Status)
	}
}

func TestCatalogMutationsAddressEntriesByID(t *testing.T) {
	svc, repo := newTestShopService()
	s := createTestShop(t, svc, "owner-1")

	first, err := svc.AddService("owner-1", ServiceInput{Name: "Haircut", Price: 20})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// A second entry with the same name is fine; the IDs differ.
	second, err := svc.AddService("owner-1", ServiceInput{Name: "Haircut", Price: 35})
	if err != nil {
		t.Fatalf("duplicate-name add failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("catalog entries must have distinct IDs")
	}

	// Editing the second entry leaves the first untouched.
	if err := svc.UpdateService("owner-1", second.ID, ServiceInput{Name: "Deluxe Haircut", Price: 40}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ := repo.GetByID(s.ID)
	if got.Services[0].Name != "Haircut" || got.Services[0].Price != 20 {
		t.Fatalf("first entry changed unexpectedly: %+v", got.Services[0])
	}
	if got.Services[1].Name != "Deluxe Haircut" || got.Services[1].Price != 40 {
		t.Fatalf("second entry not updated: %+v", got.Services[1])
	}

	// Removing the first keeps the second, in order.
	if err := svc.RemoveService("owner-1", first.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	got, _ = repo.GetByID(s.ID)
	if len(got.Services) != 1 || got.Services[0].ID != second.ID {
		t.Fatalf("expected only the second entry to remain, got %+v", got.Services)
	}
}

func TestCatalogMutationUnknownEntry(t *testing.T) {
	svc, _ := newTestShopService()
	createTestShop(t, svc, "owner-1")

	var verr *ValidationError
	if err := svc.UpdateService("owner-1", "no-such-id", ServiceInput{Name: "X", Price: 1}); !errors.As(err, &verr) {
		t.Fatalf("updating an unknown entry should fail, got %v", err)
	}
	if err := svc.RemoveService("owner-1", "no-such-id"); !errors.As(err, &verr) {
		t.Fatalf("removing an unknown entry should fail, got %v", err)
	}
}

func TestCatalogMutationRetriesVersionConflict(t *testing.T) {
	svc, repo := newTestShopService()
	s := createTestShop(t, svc, "owner-1")

	// Two lost races, then success on the re-read.
	repo.mu.Lock()
	repo.conflictsLeft = 2
	repo.mu.Unlock()

	if _, err := svc.AddService("owner-1", ServiceInput{Name: "Haircut", Price: 20}); err != nil {
		t.Fatalf("add should survive transient version conflicts: %v", err)
	}
	got, _ := repo.GetByID(s.ID)
	if len(got.Services) != 1 {
		t.Fatalf("expected 1 entry after retry, got %d", len(got.Services))
	}
}

func TestCatalogMutationGivesUpAfterRepeatedConflicts(t *testing.T) {
	svc, repo := newTestShopService()
	createTestShop(t, svc, "owner-1")

	repo.mu.Lock()
	repo.conflictsLeft = catalogRetries + 1
	repo.mu.Unlock()

	_, err := svc.AddService("owner-1", ServiceInput{Name: "Haircut", Price: 20})
	if !errors.Is(err, shopRepo.ErrVersionConflict) {
		t.Fatalf("expected a surfaced version conflict, got %v", err)
	}
}

func TestUpdateLocationSetsAndClearsPair(t *testing.T) {
	svc, repo := newTestShopService()
	s := createTestShop(t, svc, "owner-1")

	lat, lng := 51.5074, -0.1278
	if err := svc.UpdateLocation("owner-1", &lat, &lng); err != nil {
		t.Fatalf("set location failed: %v", err)
	}
	got, _ := repo.GetByID(s.ID)
	if !got.HasCoordinates() {
		t.Fatal("coordinates not stored")
	}

	var verr *ValidationError
	if err := svc.UpdateLocation("owner-1", &lat, nil); !errors.As(err, &verr) {
		t.Fatalf("half pair should fail, got %v", err)
	}

	if err := svc.UpdateLocation("owner-1", nil, nil); err != nil {
		t.Fatalf("clear location failed: %v", err)
	}
	got, _ = repo.GetByID(s.ID)
	if got.HasCoordinates() {
		t.Fatal("coordinates not cleared")
	}
}
