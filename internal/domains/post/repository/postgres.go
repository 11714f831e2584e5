package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresPostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postgresPostRepository{pool: pool}
}

func (r *postgresPostRepository) Save(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (id, author_id, challenge_id, content, published_at, image_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.AuthorID,
		post.ChallengeID,
		post.Content,
		post.PublishedAt,
		post.ImageID,
	)

	if err != nil {
		// Unique constraint on (author_id, challenge_id) is the backstop
		// for the race between the existence check and the insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrChallengeAlreadyCompleted
		}
		return fmt.Errorf("failed to save post: %w", err)
	}

	return nil
}

func (r *postgresPostRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT id, author_id, challenge_id, content, published_at, image_id
		FROM posts
		WHERE id = $1
	`

	post := &model.Post{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.ChallengeID,
		&post.Content,
		&post.PublishedAt,
		&post.ImageID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

func (r *postgresPostRepository) FindPublishedPage(ctx context.Context, page, limit int) ([]*model.Post, error) {
	query := `
		SELECT id, author_id, challenge_id, content, published_at, image_id
		FROM posts
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, page*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0, limit)
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.ChallengeID,
			&post.Content,
			&post.PublishedAt,
			&post.ImageID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}

func (r *postgresPostRepository) ExistsByAuthorAndChallenge(ctx context.Context, authorID, challengeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM posts WHERE author_id = $1 AND challenge_id = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, authorID, challengeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing post: %w", err)
	}

	return exists, nil
}

func (r *postgresPostRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}
