package model

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusFound, StatusPending, StatusClaimed} {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be a valid status", s)
		}
	}
	for _, s := range []string{"", "lost", "FOUND"} {
		if ValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []string{CategoryElectronics, CategoryDocuments, CategoryAccessories, CategoryOthers} {
		if !ValidCategory(c) {
			t.Errorf("expected %q to be a valid category", c)
		}
	}
	if ValidCategory("furniture") {
		t.Error("expected unknown category to be invalid")
	}
}
