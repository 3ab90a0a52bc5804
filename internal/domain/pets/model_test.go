package pets

import "testing"

func strPtr(s string) *string { return &s }

func TestPetPatch_Apply_LeavesUnsetFieldsUntouched(t *testing.T) {
	w := 12.5
	p := NewPet("pet-1", PetInput{
		Name:    "Rex",
		Species: SpeciesDog,
		Breed:   "beagle",
		Weight:  &w,
		Gender:  GenderMale,
	})

	newName := "Rex II"
	got := PetPatch{Name: &newName}.Apply(p)

	if got.Name != "Rex II" {
		t.Fatalf("expected name updated, got %q", got.Name)
	}
	if got.Breed != "beagle" || got.Species != SpeciesDog || got.Gender != GenderMale {
		t.Fatalf("expected untouched fields, got %#v", got)
	}
	if got.Weight == nil || *got.Weight != 12.5 {
		t.Fatalf("expected weight untouched, got %v", got.Weight)
	}
	if got.ID != "pet-1" {
		t.Fatalf("id must not change, got %q", got.ID)
	}
}

func TestNewPet_StartsWithEmptyVaccines(t *testing.T) {
	p := NewPet("pet-1", PetInput{Name: "Mia", Species: SpeciesCat, Gender: GenderFemale})
	if p.Vaccines == nil || len(p.Vaccines) != 0 {
		t.Fatalf("expected empty non-nil vaccine list, got %#v", p.Vaccines)
	}
}

func TestVaccinePatch_NextDate_PresentNullClears(t *testing.T) {
	v := NewVaccine("v1", VaccineInput{Name: "Rabies", Date: "2024-01-01", NextDate: strPtr("2025-01-01")})

	kept := VaccinePatch{}.Apply(v)
	if !kept.HasNextDate() {
		t.Fatalf("absent nextDate must keep value")
	}

	cleared := VaccinePatch{NextDate: ClearableDate{Present: true}}.Apply(v)
	if cleared.NextDate != nil {
		t.Fatalf("expected nextDate cleared, got %v", *cleared.NextDate)
	}

	moved := VaccinePatch{NextDate: ClearableDate{Present: true, Value: strPtr("2026-02-02")}}.Apply(v)
	if moved.NextDate == nil || *moved.NextDate != "2026-02-02" {
		t.Fatalf("expected nextDate moved, got %v", moved.NextDate)
	}
}

func TestPet_Clone_IsDeep(t *testing.T) {
	w := 3.0
	p := NewPet("pet-1", PetInput{Name: "Mia", Weight: &w})
	p.Vaccines = append(p.Vaccines, NewVaccine("v1", VaccineInput{Name: "FVRCP", NextDate: strPtr("2025-05-05")}))

	c := p.Clone()
	*c.Weight = 9
	*c.Vaccines[0].NextDate = "2030-01-01"
	c.Vaccines[0].Name = "changed"

	if *p.Weight != 3 {
		t.Fatalf("clone shares weight pointer")
	}
	if *p.Vaccines[0].NextDate != "2025-05-05" || p.Vaccines[0].Name != "FVRCP" {
		t.Fatalf("clone shares vaccines")
	}
}

func TestSortVaccines(t *testing.T) {
	in := []Vaccine{
		{ID: "a", Name: "rabies", Date: "2024-03-01", NextDate: strPtr("2025-03-01")},
		{ID: "b", Name: "Distemper", Date: "2023-12-01"},
		{ID: "c", Name: "Leptospirosis", Date: "2024-01-15", NextDate: strPtr("2024-07-15")},
	}

	ids := func(vs []Vaccine) string {
		s := ""
		for _, v := range vs {
			s += v.ID
		}
		return s
	}

	cases := []struct {
		key  SortKey
		dir  SortDir
		want string
	}{
		{SortByName, Ascending, "bca"},
		{SortByName, Descending, "acb"},
		{SortByDate, Ascending, "bca"},
		{SortByDate, Descending, "acb"},
		{SortByNextDate, Ascending, "cab"},
		{SortKey("unknown"), Ascending, "abc"},
	}
	for _, tc := range cases {
		got := ids(SortVaccines(in, tc.key, tc.dir))
		if got != tc.want {
			t.Fatalf("sort %s %s: expected %s, got %s", tc.key, tc.dir, tc.want, got)
		}
	}

	if ids(in) != "abc" {
		t.Fatalf("SortVaccines must not mutate input")
	}
}
