package postgres

import "testing"

func TestMigrateURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/pets?sslmode=disable":   "pgx5://u:p@localhost:5432/pets?sslmode=disable",
		"postgresql://u:p@localhost:5432/pets?sslmode=disable": "pgx5://u:p@localhost:5432/pets?sslmode=disable",
		"pgx5://already": "pgx5://already",
	}
	for in, want := range cases {
		if got := migrateURL(in); got != want {
			t.Fatalf("migrateURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected up/down migrations, got %d files", len(entries))
	}
}
