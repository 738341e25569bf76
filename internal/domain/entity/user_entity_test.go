package entity

import (
	"strings"
	"testing"
)

func validInput() NewUserInput {
	return NewUserInput{
		FirstName: "Asha",
		LastName:  "Patel",
		Email:     "asha.patel@example.com",
		Password:  "supersecret",
		Company: Company{
			Name:     "GreenGrid",
			Size:     "11-50",
			Industry: "Energy",
		},
		MainGoal:   "measure emissions",
		HeardFrom:  "linkedin",
		AgreeTerms: true,
	}
}

func TestNewUserValid(t *testing.T) {
	u, err := NewUser(validInput())
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}
	if u.Email != "asha.patel@example.com" {
		t.Errorf("email = %q", u.Email)
	}
	if !u.AgreeTerms {
		t.Error("agreeTerms not set")
	}
	if u.ID != "" {
		t.Errorf("unpersisted user should have empty id, got %q", u.ID)
	}
}

func TestNewUserNormalizesEmail(t *testing.T) {
	in := validInput()
	in.Email = "  Asha.Patel@Example.COM  "
	u, err := NewUser(in)
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}
	if u.Email != "asha.patel@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
}

func TestNewUserTrimsNames(t *testing.T) {
	in := validInput()
	in.FirstName = "  Asha "
	in.LastName = " Patel  "
	u, err := NewUser(in)
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}
	if u.FirstName != "Asha" || u.LastName != "Patel" {
		t.Errorf("names not trimmed: %q %q", u.FirstName, u.LastName)
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NewUserInput)
		field  string
	}{
		{"missing first name", func(in *NewUserInput) { in.FirstName = "  " }, "firstName"},
		{"missing last name", func(in *NewUserInput) { in.LastName = "" }, "lastName"},
		{"missing email", func(in *NewUserInput) { in.Email = "" }, "email"},
		{"bad email", func(in *NewUserInput) { in.Email = "not-an-email" }, "email"},
		{"bad email no tld", func(in *NewUserInput) { in.Email = "asha@host" }, "email"},
		{"missing password", func(in *NewUserInput) { in.Password = "" }, "password"},
		{"short password", func(in *NewUserInput) { in.Password = "seven77" }, "password"},
		{"missing company name", func(in *NewUserInput) { in.Company.Name = "" }, "company.name"},
		{"missing company size", func(in *NewUserInput) { in.Company.Size = "" }, "company.size"},
		{"bad company size", func(in *NewUserInput) { in.Company.Size = "10-20" }, "company.size"},
		{"missing industry", func(in *NewUserInput) { in.Company.Industry = "" }, "company.industry"},
		{"terms not accepted", func(in *NewUserInput) { in.AgreeTerms = false }, "agreeTerms"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			u, err := NewUser(in)
			if u != nil {
				t.Fatal("expected nil user")
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if _, found := verr.Fields[tc.field]; !found {
				t.Errorf("expected field %q in %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestNewUserCollectsAllFailures(t *testing.T) {
	_, err := NewUser(NewUserInput{})
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	for _, f := range []string{"firstName", "lastName", "email", "password", "company.name", "company.size", "company.industry", "agreeTerms"} {
		if _, found := verr.Fields[f]; !found {
			t.Errorf("missing field %q in %v", f, verr.Fields)
		}
	}
	if !strings.Contains(verr.Error(), "agreeTerms") {
		t.Errorf("Error() should name the fields: %s", verr.Error())
	}
}

func TestValidCompanySize(t *testing.T) {
	for _, s := range CompanySizes {
		if !ValidCompanySize(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []string{"", "1-9", "1000", "1-10 ", "11 - 50"} {
		if ValidCompanySize(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" USER@Example.Com "); got != "user@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
