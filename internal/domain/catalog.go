package domain

// Category - категория (жанр), владеет фильмами.
type Category struct {
	ID     string   `json:"id" db:"id"`
	Image  string   `json:"image" db:"image"`
	Name   string   `json:"name" db:"name"`
	Movies []*Movie `json:"movies,omitempty" db:"-"`
}

// CreateCategoryRequest определяет тело запроса для создания категории.
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Image string `json:"image" validate:"required,min=1,max=2048"`
}

// UpdateCategoryRequest - частичное обновление категории.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Image *string `json:"image,omitempty" validate:"omitempty,min=1,max=2048"`
}

// Character - персонаж, связан с фильмами через character_movie.
type Character struct {
	ID     string   `json:"id" db:"id"`
	Image  string   `json:"image" db:"image"`
	Name   string   `json:"name" db:"name"`
	Age    int      `json:"age" db:"age"`
	Weight float64  `json:"weight" db:"weight"`
	Story  string   `json:"story" db:"story"`
	Movies []*Movie `json:"movies,omitempty" db:"-"`
}

// CreateCharacterRequest определяет тело запроса для создания персонажа.
type CreateCharacterRequest struct {
	Name   string   `json:"name" validate:"required,min=1,max=255"`
	Image  string   `json:"image" validate:"required,min=1,max=2048"`
	Age    *int     `json:"age" validate:"required,gte=0"`
	Weight *float64 `json:"weight" validate:"required,gte=20,lte=120"`
	Story  string   `json:"story" validate:"required,min=10"`
}

// UpdateCharacterRequest - частичное обновление персонажа.
type UpdateCharacterRequest struct {
	Name   *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Image  *string  `json:"image,omitempty" validate:"omitempty,min=1,max=2048"`
	Age    *int     `json:"age,omitempty" validate:"omitempty,gte=0"`
	Weight *float64 `json:"weight,omitempty" validate:"omitempty,gte=20,lte=120"`
	Story  *string  `json:"story,omitempty" validate:"omitempty,min=10"`
}

// CharacterFilter - фильтры списка персонажей (query string).
type CharacterFilter struct {
	Name    string `validate:"omitempty,max=255"`
	Age     *int   `validate:"omitempty,gte=0"`
	MovieID string `validate:"omitempty,uuid"`
}

// Movie - фильм. CategoryID обнуляется при удалении категории.
type Movie struct {
	ID          string       `json:"id" db:"id"`
	Image       string       `json:"image" db:"image"`
	Title       string       `json:"title" db:"title"`
	ReleaseDate Date         `json:"release_date" db:"release_date"`
	Stars       float64      `json:"stars" db:"stars"`
	CategoryID  *string      `json:"category_id" db:"category_id"`
	Category    *Category    `json:"category,omitempty" db:"-"`
	Characters  []*Character `json:"characters,omitempty" db:"-"`
}

// CreateMovieRequest определяет тело запроса для создания фильма.
// Категорию можно указать ссылкой (category_id) или создать вместе с фильмом (category).
type CreateMovieRequest struct {
	Title       string                 `json:"title" validate:"required,min=1,max=255"`
	Image       string                 `json:"image" validate:"required,min=1,max=2048"`
	ReleaseDate *Date                  `json:"release_date" validate:"required"`
	Stars       *float64               `json:"stars" validate:"required,gte=0,lte=5"`
	CategoryID  *string                `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Category    *CreateCategoryRequest `json:"category,omitempty" validate:"omitempty"`
}

// UpdateMovieRequest - частичное обновление фильма.
type UpdateMovieRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Image       *string  `json:"image,omitempty" validate:"omitempty,min=1,max=2048"`
	ReleaseDate *Date    `json:"release_date,omitempty"`
	Stars       *float64 `json:"stars,omitempty" validate:"omitempty,gte=0,lte=5"`
	CategoryID  *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

// Порядок сортировки по дате выхода.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// MovieFilter - фильтры списка фильмов (query string).
type MovieFilter struct {
	Title      string `validate:"omitempty,max=255"`
	CategoryID string `validate:"omitempty,uuid"`
	Order      string `validate:"omitempty,oneof=ASC DESC"`
}

// CharacterMovie - запись связи персонаж-фильм.
type CharacterMovie struct {
	ID          string `json:"id" db:"id"`
	CharacterID string `json:"character_id" db:"character_id"`
	MovieID     string `json:"movie_id" db:"movie_id"`
}

// AddCharacterRequest связывает существующего персонажа с существующим фильмом.
type AddCharacterRequest struct {
	CharacterID string `json:"character_id" validate:"required,uuid"`
	MovieID     string `json:"movie_id" validate:"required,uuid"`
}
