package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shoply/jobboard/internal/models"
)

func TestRegisterJobSeeker(t *testing.T) {
	r, db := newTestRouter(t)

	registerUser(t, r, map[string]any{
		"username": "seeker",
		"email":    "seeker@example.com",
		"password": "str0ng-and-l0ng",
	})

	var u models.User
	if err := db.Where("username = ?", "seeker").Take(&u).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if u.Role != models.RoleJobSeeker {
		t.Fatalf("expected default role JOB_SEEKER got %s", u.Role)
	}
	if u.PasswordHash == "str0ng-and-l0ng" || u.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
}

func TestRegisterShopOwnerCreatesProfile(t *testing.T) {
	r, db := newTestRouter(t)

	id := registerUser(t, r, map[string]any{
		"username":     "owner",
		"email":        "owner@example.com",
		"password":     "str0ng-and-l0ng",
		"role":         "SHOP_OWNER",
		"company_name": "Test Shop",
		"description":  "d",
		"location":     "l",
	})

	var shop models.ShopProfile
	if err := db.Where("user_id = ?", id).Take(&shop).Error; err != nil {
		t.Fatalf("expected shop profile created: %v", err)
	}
	if shop.CompanyName != "Test Shop" {
		t.Fatalf("unexpected company name %q", shop.CompanyName)
	}
	if shop.IsVerified {
		t.Fatalf("new shops must start unverified")
	}
}

func TestRegisterShopOwnerPartialShopDataDropped(t *testing.T) {
	r, db := newTestRouter(t)

	// location is missing: user created, shop silently skipped
	id := registerUser(t, r, map[string]any{
		"username":     "partial",
		"email":        "partial@example.com",
		"password":     "str0ng-and-l0ng",
		"role":         "SHOP_OWNER",
		"company_name": "Half Shop",
		"description":  "d",
	})

	var count int64
	db.Model(&models.ShopProfile{}).Where("user_id = ?", id).Count(&count)
	if count != 0 {
		t.Fatalf("expected no shop profile for partial data, got %d", count)
	}
}

func TestRegisterWeakPasswordRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "abc1"},
		{"all numeric", "1234567890"},
		{"similar to username", "weakuser99"},
	}
	for _, tc := range cases {
		w := doJSON(t, r, http.MethodPost, "/users/", "", map[string]any{
			"username": "weakuser",
			"email":    "weak@example.com",
			"password": tc.password,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d: %s", tc.name, w.Code, w.Body.String())
		}
		var out struct {
			Errors map[string][]string `json:"errors"`
		}
		decode(t, w, &out)
		if len(out.Errors["password"]) == 0 {
			t.Fatalf("%s: expected password field errors, got %v", tc.name, out.Errors)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := newTestRouter(t)

	registerUser(t, r, map[string]any{
		"username": "taken",
		"email":    "a@example.com",
		"password": "str0ng-and-l0ng",
	})

	w := doJSON(t, r, http.MethodPost, "/users/", "", map[string]any{
		"username": "taken",
		"email":    "b@example.com",
		"password": "str0ng-and-l0ng",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

// Registration through verification: a fresh shop owner is locked out of
// posting jobs until an administrator flips is_verified.
func TestUnverifiedOwnerCannotPostJobs(t *testing.T) {
	r, db := newTestRouter(t)

	registerUser(t, r, map[string]any{
		"username":     "newowner",
		"email":        "newowner@example.com",
		"password":     "str0ng-and-l0ng",
		"role":         "SHOP_OWNER",
		"company_name": "Test Shop",
		"description":  "d",
		"location":     "l",
	})
	token := login(t, r, "newowner", "str0ng-and-l0ng")

	w := doJSON(t, r, http.MethodPost, "/jobs/", token, map[string]any{
		"title":       "Barista",
		"description": "coffee",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before verification got %d: %s", w.Code, w.Body.String())
	}

	if err := db.Model(&models.ShopProfile{}).
		Where("user_id IN (SELECT id FROM users WHERE username = ?)", "newowner").
		Update("is_verified", true).Error; err != nil {
		t.Fatalf("verify shop: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/jobs/", token, map[string]any{
		"title":       "Barista",
		"description": "coffee",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 after verification got %d: %s", w.Code, w.Body.String())
	}
}

func TestStaffVerifyEndpoint(t *testing.T) {
	r, db := newTestRouter(t)

	registerUser(t, r, map[string]any{
		"username":     "shopkeeper",
		"email":        "shopkeeper@example.com",
		"password":     "str0ng-and-l0ng",
		"role":         "SHOP_OWNER",
		"company_name": "Keeper Shop",
		"description":  "d",
		"location":     "l",
	})
	var shop models.ShopProfile
	if err := db.Joins("JOIN users ON users.id = shop_profiles.user_id").
		Where("users.username = ?", "shopkeeper").Take(&shop).Error; err != nil {
		t.Fatalf("load shop: %v", err)
	}

	seekerToken := seedSeeker(t, r, "plainuser") // non-staff caller
	verifyPath := fmt.Sprintf("/shops/%d/verify/", shop.ID)
	w := doJSON(t, r, http.MethodPost, verifyPath, seekerToken, map[string]any{"is_verified": true})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-staff verify: expected 403 got %d", w.Code)
	}

	registerUser(t, r, map[string]any{
		"username": "admin",
		"email":    "admin@example.com",
		"password": "str0ng-and-l0ng",
	})
	if err := db.Model(&models.User{}).Where("username = ?", "admin").
		Update("is_staff", true).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	adminToken := login(t, r, "admin", "str0ng-and-l0ng")

	w = doJSON(t, r, http.MethodPost, verifyPath, adminToken, map[string]any{"is_verified": true})
	if w.Code != http.StatusOK {
		t.Fatalf("staff verify: expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var reloaded models.ShopProfile
	db.Take(&reloaded, shop.ID)
	if !reloaded.IsVerified {
		t.Fatalf("shop not verified after staff call")
	}
}
