// internal/grpc/server.go
package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"catalog-service/internal/domain"
	"catalog-service/internal/service"
)

// Server реализует LookupServer поверх сервисов каталога.
type Server struct {
	movies *service.MovieService
	users  *service.UserService
	logger *slog.Logger
}

func NewServer(movies *service.MovieService, users *service.UserService, logger *slog.Logger) *Server {
	return &Server{movies: movies, users: users, logger: logger}
}

func requireID(req *wrapperspb.StringValue) (string, error) {
	id := req.GetValue()
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", status.Errorf(codes.InvalidArgument, "id must be a UUID: %v", err)
	}
	return id, nil
}

func (s *Server) toStatus(ctx context.Context, method, id string, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		s.logger.WarnContext(ctx, "gRPC lookup: not found", slog.String("method", method), slog.String("id", id))
		return status.Errorf(codes.NotFound, "%s not found", id)
	}
	s.logger.ErrorContext(ctx, "gRPC lookup failed", slog.String("method", method), slog.String("id", id), slog.String("error", err.Error()))
	return status.Error(codes.Internal, "lookup failed")
}

// movieInfo - поля фильма, которые отдаются соседним сервисам.
func movieInfo(m *domain.Movie) map[string]interface{} {
	info := map[string]interface{}{
		"id":           m.ID,
		"title":        m.Title,
		"image":        m.Image,
		"release_date": m.ReleaseDate.String(),
		"stars":        m.Stars,
		"category_id":  nil,
	}
	if m.CategoryID != nil {
		info["category_id"] = *m.CategoryID
	}
	return info
}

func (s *Server) CheckMovieExists(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	s.logger.InfoContext(ctx, "gRPC CheckMovieExists called", slog.String("movie_id", req.GetValue()))
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}
	exists, err := s.movies.Exists(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, "CheckMovieExists", id, err)
	}
	return wrapperspb.Bool(exists), nil
}

func (s *Server) GetMovieInfo(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	s.logger.InfoContext(ctx, "gRPC GetMovieInfo called", slog.String("movie_id", req.GetValue()))
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}
	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, "GetMovieInfo", id, err)
	}
	out, err := structpb.NewStruct(movieInfo(movie))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode movie: %v", err)
	}
	return out, nil
}

// GetUser отдает публичные поля пользователя, без хеша пароля.
func (s *Server) GetUser(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	s.logger.InfoContext(ctx, "gRPC GetUser called", slog.String("user_id", req.GetValue()))
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, "GetUser", id, err)
	}
	out, err := structpb.NewStruct(map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode user: %v", err)
	}
	return out, nil
}
