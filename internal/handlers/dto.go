package handlers

import (
	"time"

	"review-backend/internal/models"
	"review-backend/internal/services"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type TokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// ClassificationRequest covers both categories and genres.
type ClassificationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TitleRequest is the write shape: category and genre arrive as slugs.
// Pointer fields distinguish "absent" from "empty" for partial updates.
type TitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

func (r TitleRequest) toInput() services.TitleInput {
	return services.TitleInput{
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Category:    r.Category,
		Genres:      r.Genre,
	}
}

type ReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type CommentRequest struct {
	Text *string `json:"text"`
}

type ClassificationResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TitleResponse is the read shape: nested classification objects plus the
// computed average rating (null while the title has no reviews).
type TitleResponse struct {
	ID          uint                     `json:"id"`
	Name        string                   `json:"name"`
	Year        int                      `json:"year"`
	Rating      *float64                 `json:"rating"`
	Description string                   `json:"description"`
	Genre       []ClassificationResponse `json:"genre"`
	Category    *ClassificationResponse  `json:"category"`
}

type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func newCategoryResponse(c *models.Category) ClassificationResponse {
	return ClassificationResponse{Name: c.Name, Slug: c.Slug}
}

func newGenreResponse(g *models.Genre) ClassificationResponse {
	return ClassificationResponse{Name: g.Name, Slug: g.Slug}
}

func newCategoryResponses(categories []models.Category) []ClassificationResponse {
	out := make([]ClassificationResponse, 0, len(categories))
	for i := range categories {
		out = append(out, newCategoryResponse(&categories[i]))
	}
	return out
}

func newGenreResponses(genres []models.Genre) []ClassificationResponse {
	out := make([]ClassificationResponse, 0, len(genres))
	for i := range genres {
		out = append(out, newGenreResponse(&genres[i]))
	}
	return out
}

func newTitleResponse(t *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       newGenreResponses(t.Genres),
	}
	if t.Category != nil {
		category := newCategoryResponse(t.Category)
		resp.Category = &category
	}
	return resp
}

func newTitleResponses(titles []models.Title) []TitleResponse {
	out := make([]TitleResponse, 0, len(titles))
	for i := range titles {
		out = append(out, newTitleResponse(&titles[i]))
	}
	return out
}

func newReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
	if r.Author != nil {
		resp.Author = r.Author.Username
	}
	return resp
}

func newReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, newReviewResponse(&reviews[i]))
	}
	return out
}

func newCommentResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
	if c.Author != nil {
		resp.Author = c.Author.Username
	}
	return resp
}

func newCommentResponses(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentResponse(&comments[i]))
	}
	return out
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

func newUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}
