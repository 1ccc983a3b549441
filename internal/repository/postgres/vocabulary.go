package postgres

import (
	"database/sql"
	"fmt"

	"wordballs/internal/domain"
)

// VocabularyRepo implements repository.VocabularyRepository
type VocabularyRepo struct {
	db *sql.DB
}

// NewVocabularyRepo creates a new vocabulary repository
func NewVocabularyRepo(db *sql.DB) *VocabularyRepo {
	return &VocabularyRepo{db: db}
}

// ListWords returns all entries of a language in source order
func (r *VocabularyRepo) ListWords(language string) ([]domain.WordEntry, error) {
	query := `
		SELECT text, language, category, asset_ref
		FROM vocabulary
		WHERE language = $1
		ORDER BY position, id
	`

	rows, err := r.db.Query(query, language)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var words []domain.WordEntry
	for rows.Next() {
		var w domain.WordEntry
		var category, assetRef sql.NullString
		if err := rows.Scan(&w.Text, &w.Language, &category, &assetRef); err != nil {
			return nil, err
		}
		w.Text = domain.NormalizeText(w.Text)
		w.Category = category.String
		w.AssetRef = assetRef.String
		words = append(words, w)
	}

	return words, rows.Err()
}

// ListLanguages returns the languages that have at least one entry
func (r *VocabularyRepo) ListLanguages() ([]string, error) {
	return r.listStrings(`SELECT DISTINCT language FROM vocabulary ORDER BY language`)
}

// ListCategories returns the categories used by a language
func (r *VocabularyRepo) ListCategories(language string) ([]string, error) {
	query := `
		SELECT DISTINCT COALESCE(NULLIF(category, ''), $2)
		FROM vocabulary
		WHERE language = $1
		ORDER BY 1
	`
	return r.listStrings(query, language, domain.DefaultCategory)
}

func (r *VocabularyRepo) listStrings(query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}
