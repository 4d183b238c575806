package polls

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a question or choice does not exist, or when
// a choice does not belong to the requested question.
var ErrNotFound = errors.New("polls: not found")

// Question is a poll question.
type Question struct {
	ID      int64     `json:"id"`
	Text    string    `json:"question_text"`
	PubDate time.Time `json:"pub_date"`
}

// Choice is one answer to a question together with its tally.
type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

// Store wraps a SQLite database holding questions and choices.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the SQLite database identified by dsn and runs the
// schema migration. File DSNs get their parent directory created.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if path := filePath(dsn); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("polls: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("polls: open: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes
	// writers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
PRAGMA foreign_keys = ON;
CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_text TEXT NOT NULL,
    pub_date TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS choices (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    choice_text TEXT NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_choices_question ON choices(question_id);
`)
	if err != nil {
		return fmt.Errorf("polls: migrate: %w", err)
	}
	return nil
}

// LatestQuestions returns up to n questions, newest publication date first.
func (s *Store) LatestQuestions(ctx context.Context, n int) ([]Question, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question_text, pub_date FROM questions ORDER BY pub_date DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("polls: latest questions: %w", err)
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("polls: latest questions: %w", err)
	}
	return out, nil
}

// Question loads one question by id.
func (s *Store) Question(ctx context.Context, id int64) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, question_text, pub_date FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, fmt.Errorf("polls: question %d: %w", id, ErrNotFound)
	}
	return q, err
}

// Choices lists the choices of a question in creation order.
func (s *Store) Choices(ctx context.Context, questionID int64) ([]Choice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question_id, choice_text, votes FROM choices WHERE question_id = ? ORDER BY id`, questionID)
	if err != nil {
		return nil, fmt.Errorf("polls: choices: %w", err)
	}
	defer rows.Close()

	var out []Choice
	for rows.Next() {
		var c Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes); err != nil {
			return nil, fmt.Errorf("polls: scan choice: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("polls: choices: %w", err)
	}
	return out, nil
}

// Vote increments the tally of choiceID, which must belong to questionID.
func (s *Store) Vote(ctx context.Context, questionID, choiceID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE choices SET votes = votes + 1 WHERE id = ? AND question_id = ?`, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("polls: vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("polls: vote: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("polls: choice %d of question %d: %w", choiceID, questionID, ErrNotFound)
	}
	return nil
}

// CreateQuestion inserts a question published now along with its choices.
func (s *Store) CreateQuestion(ctx context.Context, text string, choices ...string) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, errors.New("polls: question text is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Question{}, fmt.Errorf("polls: begin: %w", err)
	}
	defer tx.Rollback()

	q := Question{Text: text, PubDate: s.now().UTC().Truncate(time.Second)}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO questions (question_text, pub_date) VALUES (?, ?)`, q.Text, q.PubDate.Format(time.RFC3339))
	if err != nil {
		return Question{}, fmt.Errorf("polls: insert question: %w", err)
	}
	if q.ID, err = res.LastInsertId(); err != nil {
		return Question{}, fmt.Errorf("polls: insert question: %w", err)
	}

	for _, choice := range choices {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO choices (question_id, choice_text) VALUES (?, ?)`, q.ID, choice); err != nil {
			return Question{}, fmt.Errorf("polls: insert choice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Question{}, fmt.Errorf("polls: commit: %w", err)
	}
	return q, nil
}

// Seed inserts a demo question when the database is empty.
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return fmt.Errorf("polls: seed: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := s.CreateQuestion(ctx, "What's new?", "Not much", "The sky", "Just hacking again")
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row scanner) (Question, error) {
	var (
		q       Question
		pubDate string
	)
	if err := row.Scan(&q.ID, &q.Text, &pubDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, err
		}
		return Question{}, fmt.Errorf("polls: scan question: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339, pubDate)
	if err != nil {
		return Question{}, fmt.Errorf("polls: parse pub_date %q: %w", pubDate, err)
	}
	q.PubDate = parsed
	return q, nil
}

func filePath(dsn string) string {
	if dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}
