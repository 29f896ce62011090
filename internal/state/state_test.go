package state

import (
	"testing"

	"github.com/example/ride-client/internal/models"
)

func TestSetUserLocationClearsSelectedDriver(t *testing.T) {
	drivers := NewDriverStore()
	loc := NewLocationStore(drivers)

	drivers.SetDrivers([]models.MarkerData{{Driver: models.Driver{ID: 7}}})
	drivers.SetSelectedDriver(7)

	loc.SetUserLocation(35.0, 139.0, "Shibuya")

	if sel := drivers.Snapshot().SelectedDriver; sel != nil {
		t.Fatalf("expected selection cleared, got %d", *sel)
	}
	// the driver list itself is untouched
	if n := len(drivers.Snapshot().Drivers); n != 1 {
		t.Fatalf("expected driver list preserved, got %d entries", n)
	}
}

func TestSetDestinationClearsSelectedDriver(t *testing.T) {
	drivers := NewDriverStore()
	loc := NewLocationStore(drivers)

	drivers.SetSelectedDriver(3)
	loc.SetDestinationLocation(35.1, 139.1, "Tokyo Station")

	if sel := drivers.Snapshot().SelectedDriver; sel != nil {
		t.Fatalf("expected selection cleared, got %d", *sel)
	}
}

func TestSetUserLocationWithoutSelection(t *testing.T) {
	drivers := NewDriverStore()
	loc := NewLocationStore(drivers)

	cleared := 0
	cancel := drivers.Subscribe(func(DriverSnapshot) { cleared++ })
	defer cancel()

	loc.SetUserLocation(35.0, 139.0, "Shibuya")

	if sel := drivers.Snapshot().SelectedDriver; sel != nil {
		t.Fatalf("expected selection to stay nil, got %d", *sel)
	}
	// no selection to clear means no driver-store notification
	if cleared != 0 {
		t.Fatalf("expected no driver notifications, got %d", cleared)
	}
}

func TestLocationSnapshotAndCoords(t *testing.T) {
	loc := NewLocationStore(NewDriverStore())

	if loc.UserCoord() != nil || loc.DestinationCoord() != nil {
		t.Fatal("expected no coordinates before any set")
	}

	loc.SetUserLocation(0, 0, "Null Island")
	user := loc.UserCoord()
	if user == nil {
		t.Fatal("(0,0) is a valid user position")
	}
	if user.Latitude != 0 || user.Longitude != 0 {
		t.Fatalf("unexpected coords %+v", user)
	}

	snap := loc.Snapshot()
	if !snap.User.Set || snap.User.Address != "Null Island" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Destination.Set {
		t.Fatal("destination must remain unset")
	}
}

func TestLocationSubscribeNotifies(t *testing.T) {
	loc := NewLocationStore(NewDriverStore())

	var got []LocationSnapshot
	cancel := loc.Subscribe(func(s LocationSnapshot) { got = append(got, s) })

	loc.SetUserLocation(1, 2, "a")
	loc.SetDestinationLocation(3, 4, "b")
	cancel()
	loc.SetUserLocation(5, 6, "c")

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[1].Destination.Address != "b" {
		t.Fatalf("unexpected snapshot %+v", got[1])
	}
}

func TestDriverStoreReplacesList(t *testing.T) {
	drivers := NewDriverStore()
	drivers.SetDrivers([]models.MarkerData{{Driver: models.Driver{ID: 1}}, {Driver: models.Driver{ID: 2}}})
	drivers.SetDrivers([]models.MarkerData{{Driver: models.Driver{ID: 9}}})

	snap := drivers.Snapshot()
	if len(snap.Drivers) != 1 || snap.Drivers[0].ID != 9 {
		t.Fatalf("expected replacement, got %+v", snap.Drivers)
	}
}

func TestDriverSelectionLifecycle(t *testing.T) {
	drivers := NewDriverStore()
	drivers.SetSelectedDriver(4)
	if sel := drivers.Snapshot().SelectedDriver; sel == nil || *sel != 4 {
		t.Fatalf("expected selection 4, got %v", sel)
	}
	drivers.ClearSelectedDriver()
	if sel := drivers.Snapshot().SelectedDriver; sel != nil {
		t.Fatalf("expected cleared selection, got %d", *sel)
	}
}
