package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"catalog-service/internal/domain"
	"catalog-service/internal/testutil"
)

type stores struct {
	db         *sqlx.DB
	users      *SQLUserStore
	categories *SQLCategoryStore
	characters *SQLCharacterStore
	movies     *SQLMovieStore
}

func newStores(t *testing.T) stores {
	t.Helper()
	d := testutil.OpenTestDB(t)
	logger := testutil.Logger()
	return stores{
		db:         d,
		users:      NewSQLUserStore(d, logger),
		categories: NewSQLCategoryStore(d, logger),
		characters: NewSQLCharacterStore(d, logger),
		movies:     NewSQLMovieStore(d, logger),
	}
}

func mustCategory(t *testing.T, s stores, name string) *domain.Category {
	t.Helper()
	c := &domain.Category{ID: uuid.NewString(), Name: name, Image: name + ".png"}
	if err := s.categories.Create(context.Background(), c); err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return c
}

func mustMovie(t *testing.T, s stores, title, date string, categoryID *string) *domain.Movie {
	t.Helper()
	rd, err := domain.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	m := &domain.Movie{ID: uuid.NewString(), Title: title, Image: title + ".jpg", ReleaseDate: rd, Stars: 4.5, CategoryID: categoryID}
	if err := s.movies.Create(context.Background(), m); err != nil {
		t.Fatalf("create movie %s: %v", title, err)
	}
	return m
}

func mustCharacter(t *testing.T, s stores, name string, age int) *domain.Character {
	t.Helper()
	ch := &domain.Character{ID: uuid.NewString(), Name: name, Image: name + ".png", Age: age, Weight: 60, Story: "a long enough story"}
	if err := s.characters.Create(context.Background(), ch); err != nil {
		t.Fatalf("create character %s: %v", name, err)
	}
	return ch
}

func TestUserStore_CRUD(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()

	u := &domain.User{ID: uuid.NewString(), Email: "jane@example.com", PasswordHash: "hash", Role: "customer"}
	if err := s.users.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := &domain.User{ID: uuid.NewString(), Email: "jane@example.com", PasswordHash: "hash", Role: "customer"}
	if err := s.users.Create(ctx, dup); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for duplicate email, got %v", err)
	}

	got, err := s.users.GetByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.CreatedAt.IsZero() || time.Since(got.CreatedAt) > time.Minute {
		t.Fatalf("created_at not persisted: %v", got.CreatedAt)
	}

	got.Role = "admin"
	if err := s.users.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := s.users.GetByID(ctx, u.ID)
	if err != nil || again.Role != "admin" {
		t.Fatalf("role not updated: %+v, %v", again, err)
	}

	list, err := s.users.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %d users, %v", len(list), err)
	}

	if err := s.users.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.users.GetByID(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.users.Delete(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
	missing := &domain.User{ID: uuid.NewString(), Email: "x@example.com", Role: "customer"}
	if err := s.users.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for update of missing user, got %v", err)
	}
}

func TestCategoryDelete_NullsMovieCategory(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()

	c := mustCategory(t, s, "Drama")
	m := mustMovie(t, s, "Titanic", "1997-12-19", &c.ID)

	if err := s.categories.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	got, err := s.movies.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("movie should survive category delete: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("expected category_id to be NULL, got %q", *got.CategoryID)
	}
	if got.ReleaseDate.String() != "1997-12-19" {
		t.Fatalf("release date round trip: %s", got.ReleaseDate)
	}
}

func TestCategoryStore_DuplicateName(t *testing.T) {
	s := newStores(t)
	mustCategory(t, s, "Comedy")
	c := &domain.Category{ID: uuid.NewString(), Name: "Comedy", Image: "x.png"}
	if err := s.categories.Create(context.Background(), c); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMovieStore_InvalidCategoryReference(t *testing.T) {
	s := newStores(t)
	ghost := uuid.NewString()
	rd, _ := domain.ParseDate("2001-01-01")
	m := &domain.Movie{ID: uuid.NewString(), Title: "Ghost", Image: "g.jpg", ReleaseDate: rd, Stars: 3, CategoryID: &ghost}
	if err := s.movies.Create(context.Background(), m); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestMovieStore_ListFiltersAndOrder(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()

	drama := mustCategory(t, s, "Drama")
	scifi := mustCategory(t, s, "Sci-Fi")
	mustMovie(t, s, "Titanic", "1997-12-19", &drama.ID)
	mustMovie(t, s, "Interstellar", "2014-11-07", &scifi.ID)
	mustMovie(t, s, "Alien", "1979-05-25", &scifi.ID)

	all, err := s.movies.List(ctx, domain.MovieFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if titles(all) != "Alien,Interstellar,Titanic" {
		t.Fatalf("default order by title, got %s", titles(all))
	}

	byCat, err := s.movies.List(ctx, domain.MovieFilter{CategoryID: scifi.ID, Order: domain.OrderDesc})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if titles(byCat) != "Interstellar,Alien" {
		t.Fatalf("category filter with DESC, got %s", titles(byCat))
	}

	asc, _ := s.movies.List(ctx, domain.MovieFilter{Order: domain.OrderAsc})
	if titles(asc) != "Alien,Titanic,Interstellar" {
		t.Fatalf("ASC by release date, got %s", titles(asc))
	}

	byTitle, _ := s.movies.List(ctx, domain.MovieFilter{Title: "STELL"})
	if titles(byTitle) != "Interstellar" {
		t.Fatalf("title substring filter, got %s", titles(byTitle))
	}
}

func TestMovieStore_CreateWithCategory(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()

	c := &domain.Category{ID: uuid.NewString(), Name: "Horror", Image: "h.png"}
	rd, _ := domain.ParseDate("1980-05-23")
	m := &domain.Movie{ID: uuid.NewString(), Title: "The Shining", Image: "s.jpg", ReleaseDate: rd, Stars: 4.2}
	if err := s.movies.CreateWithCategory(ctx, m, c); err != nil {
		t.Fatalf("create with category: %v", err)
	}
	got, err := s.movies.GetByID(ctx, m.ID)
	if err != nil || got.CategoryID == nil || *got.CategoryID != c.ID {
		t.Fatalf("movie should reference new category: %+v, %v", got, err)
	}

	// дубликат названия фильма откатывает и новую категорию
	c2 := &domain.Category{ID: uuid.NewString(), Name: "Thriller", Image: "t.png"}
	m2 := &domain.Movie{ID: uuid.NewString(), Title: "The Shining", Image: "s2.jpg", ReleaseDate: rd, Stars: 3}
	if err := s.movies.CreateWithCategory(ctx, m2, c2); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := s.categories.GetByID(ctx, c2.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("category should be rolled back, got %v", err)
	}
}

func TestCharacterMovie_RelationsAndCascade(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()

	m := mustMovie(t, s, "Toy Story", "1995-11-22", nil)
	other := mustMovie(t, s, "Cars", "2006-06-09", nil)
	woody := mustCharacter(t, s, "Woody", 30)
	buzz := mustCharacter(t, s, "Buzz", 35)

	for _, ch := range []*domain.Character{woody, buzz} {
		if err := s.movies.AddCharacter(ctx, &domain.CharacterMovie{ID: uuid.NewString(), CharacterID: ch.ID, MovieID: m.ID}); err != nil {
			t.Fatalf("add character: %v", err)
		}
	}
	if err := s.movies.AddCharacter(ctx, &domain.CharacterMovie{ID: uuid.NewString(), CharacterID: woody.ID, MovieID: other.ID}); err != nil {
		t.Fatalf("add character to second movie: %v", err)
	}
	if err := s.movies.AddCharacter(ctx, &domain.CharacterMovie{ID: uuid.NewString(), CharacterID: woody.ID, MovieID: m.ID}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for duplicate pair, got %v", err)
	}

	inMovie, err := s.characters.List(ctx, domain.CharacterFilter{MovieID: m.ID})
	if err != nil || len(inMovie) != 2 {
		t.Fatalf("characters in movie: %d, %v", len(inMovie), err)
	}
	age := 30
	byAge, _ := s.characters.List(ctx, domain.CharacterFilter{Age: &age})
	if len(byAge) != 1 || byAge[0].ID != woody.ID {
		t.Fatalf("age filter: %+v", byAge)
	}
	byName, _ := s.characters.List(ctx, domain.CharacterFilter{Name: "uz"})
	if len(byName) != 1 || byName[0].ID != buzz.ID {
		t.Fatalf("name filter: %+v", byName)
	}

	woodyMovies, err := s.movies.ListByCharacter(ctx, woody.ID)
	if err != nil || len(woodyMovies) != 2 {
		t.Fatalf("movies by character: %d, %v", len(woodyMovies), err)
	}

	if err := s.movies.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete movie: %v", err)
	}
	assertRelations(t, s.db, 1)

	if err := s.characters.Delete(ctx, woody.ID); err != nil {
		t.Fatalf("delete character: %v", err)
	}
	assertRelations(t, s.db, 0)
}

func assertRelations(t *testing.T, d *sqlx.DB, want int) {
	t.Helper()
	var n int
	if err := d.Get(&n, `SELECT COUNT(*) FROM character_movie`); err != nil {
		t.Fatalf("count relations: %v", err)
	}
	if n != want {
		t.Fatalf("expected %d relation rows, got %d", want, n)
	}
}

func titles(movies []*domain.Movie) string {
	out := ""
	for i, m := range movies {
		if i > 0 {
			out += ","
		}
		out += m.Title
	}
	return out
}
