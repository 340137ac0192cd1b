// internal/clients/catalog_client.go
package clients

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	lookup "catalog-service/internal/grpc"
)

// callTimeout - таймаут на один вызов.
const callTimeout = 3 * time.Second

// MovieInfo - краткие данные о фильме из CatalogLookup.
type MovieInfo struct {
	ID          string
	Title       string
	Image       string
	ReleaseDate string
	Stars       float64
	CategoryID  string
}

// UserInfo - публичные данные пользователя.
type UserInfo struct {
	ID    string
	Email string
	Role  string
}

// CatalogClient - клиент gRPC сервиса catalog.v1.CatalogLookup.
type CatalogClient struct {
	conn   *grpc.ClientConn
	logger *slog.Logger
}

// NewCatalogClient создает клиента. Без opts используется незащищенное соединение.
func NewCatalogClient(addr string, logger *slog.Logger, opts ...grpc.DialOption) (*CatalogClient, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client for %s: %w", addr, err)
	}
	logger.Info("Catalog gRPC client created", slog.String("address", addr))
	return &CatalogClient{conn: conn, logger: logger}, nil
}

func (c *CatalogClient) invoke(ctx context.Context, method, id string, out interface{}) error {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	if err := c.conn.Invoke(callCtx, method, wrapperspb.String(id), out); err != nil {
		st, _ := status.FromError(err)
		c.logger.ErrorContext(ctx, "Catalog gRPC call failed",
			slog.String("method", method),
			slog.String("id", id),
			slog.String("code", st.Code().String()),
			slog.String("message", st.Message()))
		return fmt.Errorf("grpc %s failed for %s: %w", method, id, err)
	}
	return nil
}

func (c *CatalogClient) CheckMovieExists(ctx context.Context, movieID string) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.invoke(ctx, lookup.CheckMovieExistsMethod, movieID, out); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

func (c *CatalogClient) GetMovieInfo(ctx context.Context, movieID string) (*MovieInfo, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, lookup.GetMovieInfoMethod, movieID, out); err != nil {
		return nil, err
	}
	f := out.GetFields()
	return &MovieInfo{
		ID:          f["id"].GetStringValue(),
		Title:       f["title"].GetStringValue(),
		Image:       f["image"].GetStringValue(),
		ReleaseDate: f["release_date"].GetStringValue(),
		Stars:       f["stars"].GetNumberValue(),
		CategoryID:  f["category_id"].GetStringValue(),
	}, nil
}

func (c *CatalogClient) GetUser(ctx context.Context, userID string) (*UserInfo, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, lookup.GetUserMethod, userID, out); err != nil {
		return nil, err
	}
	f := out.GetFields()
	return &UserInfo{
		ID:    f["id"].GetStringValue(),
		Email: f["email"].GetStringValue(),
		Role:  f["role"].GetStringValue(),
	}, nil
}

// Close закрывает gRPC соединение.
func (c *CatalogClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
