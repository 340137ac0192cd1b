package clients

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"catalog-service/internal/domain"
	lookup "catalog-service/internal/grpc"
	"catalog-service/internal/service"
	"catalog-service/internal/store"
	"catalog-service/internal/testutil"
)

type lookupFixture struct {
	client *CatalogClient
	movies *service.MovieService
	users  *service.UserService
}

func newLookupFixture(t *testing.T) *lookupFixture {
	t.Helper()
	d := testutil.OpenTestDB(t)
	logger := testutil.Logger()
	movieStore := store.NewSQLMovieStore(d, logger)
	categoryStore := store.NewSQLCategoryStore(d, logger)
	characterStore := store.NewSQLCharacterStore(d, logger)
	movies := service.NewMovieService(movieStore, categoryStore, characterStore, logger)
	users := service.NewUserService(store.NewSQLUserStore(d, logger), logger)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	lookup.RegisterLookupServer(srv, lookup.NewServer(movies, users, logger))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	client, err := NewCatalogClient("passthrough:///bufnet", logger,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return &lookupFixture{client: client, movies: movies, users: users}
}

func TestCatalogLookup_Movies(t *testing.T) {
	f := newLookupFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rd, _ := domain.ParseDate("1982-06-25")
	stars := 4.6
	m, err := f.movies.Create(ctx, domain.CreateMovieRequest{Title: "Blade Runner", Image: "br.jpg", ReleaseDate: &rd, Stars: &stars,
		Category: &domain.CreateCategoryRequest{Name: "Sci-Fi", Image: "sf.png"}})
	if err != nil {
		t.Fatalf("create movie: %v", err)
	}

	exists, err := f.client.CheckMovieExists(ctx, m.ID)
	if err != nil || !exists {
		t.Fatalf("exists: %v %v", exists, err)
	}
	exists, err = f.client.CheckMovieExists(ctx, "0f8fad5b-d9cb-469f-a165-70867728950e")
	if err != nil || exists {
		t.Fatalf("missing movie reported as existing: %v %v", exists, err)
	}

	info, err := f.client.GetMovieInfo(ctx, m.ID)
	if err != nil {
		t.Fatalf("get movie info: %v", err)
	}
	if info.Title != "Blade Runner" || info.ReleaseDate != "1982-06-25" || info.Stars != 4.6 || info.CategoryID != *m.CategoryID {
		t.Fatalf("unexpected info: %+v", info)
	}

	_, err = f.client.GetMovieInfo(ctx, "0f8fad5b-d9cb-469f-a165-70867728950e")
	if status.Code(errors.Unwrap(err)) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	_, err = f.client.CheckMovieExists(ctx, "not-a-uuid")
	if status.Code(errors.Unwrap(err)) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestCatalogLookup_User(t *testing.T) {
	f := newLookupFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, err := f.users.Create(ctx, domain.CreateUserRequest{Email: "peer@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	info, err := f.client.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if info.ID != u.ID || info.Email != "peer@example.com" || info.Role != "customer" {
		t.Fatalf("unexpected user info: %+v", info)
	}
}
