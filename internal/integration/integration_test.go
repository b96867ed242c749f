package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"trivia-dialogue-service/internal/app"
	"trivia-dialogue-service/internal/content"
	"trivia-dialogue-service/internal/domain"
	"trivia-dialogue-service/internal/engine"
	pgsource "trivia-dialogue-service/internal/infra/postgres"
	pgmigrations "trivia-dialogue-service/internal/infra/postgres/migrations"
	infraredis "trivia-dialogue-service/internal/infra/redis"
)

func TestConversationEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedLocaleContent(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	source := infraredis.NewCachedSource(redisClient, pgsource.NewSource(pool), 5*time.Minute)
	repo := content.NewRepository(source)
	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	eng := engine.New(repo, engine.WithRandSeed(1))
	service := app.NewTurnService(sessionStore, eng)

	turn := func(action domain.Action, slots map[string]string) engine.Response {
		t.Helper()
		resp, err := service.HandleTurn(ctx, "sess-1", engine.Request{
			Action: action,
			Locale: "en-US", // falls back to the seeded "en" bundle
			Slots:  slots,
		})
		if err != nil {
			t.Fatalf("%s: %v", action, err)
		}
		return resp
	}

	turn(domain.ActionSetupQuiz, nil)
	welcome := turn(domain.ActionWelcome, nil)
	if len(welcome.Fragments) == 0 {
		t.Fatal("welcome fragments empty")
	}

	turn(domain.ActionFinalizeSetup, nil)
	ask := turn(domain.ActionAskQuestion, nil)
	if len(ask.Suggestions) != 3 {
		t.Fatalf("suggestions = %v", ask.Suggestions)
	}

	sess, err := sessionStore.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("session should be persisted: %v", err)
	}
	if sess.CorrectAnswer == "" {
		t.Fatalf("session missing correct answer: %+v", sess)
	}

	answer := turn(domain.ActionAnswer, map[string]string{domain.SlotAnswer: sess.CorrectAnswer})
	if !hasFragment(answer, engine.PromptRightAnswer1) {
		t.Fatalf("expected right-answer prompt, got %v", answer.Fragments)
	}

	roundEnd := turn(domain.ActionRoundEnd, nil)
	if !hasFragment(roundEnd, engine.PromptAllCorrect) {
		t.Fatalf("expected all-correct outcome, got %v", roundEnd.Fragments)
	}

	quit := turn(domain.ActionQuitYes, nil)
	if !quit.EndConversation {
		t.Fatal("quit should end the conversation")
	}
	if _, err := sessionStore.Get(ctx, "sess-1"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("ended session should be deleted, got %v", err)
	}
}

func hasFragment(resp engine.Response, want string) bool {
	for _, f := range resp.Fragments {
		if strings.Contains(f, want) {
			return true
		}
	}
	return false
}

func seedLocaleContent(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	settings := map[string]any{
		"title":              "Integration Quiz",
		"questions_per_game": 1,
	}
	questions := []map[string]any{
		{
			"question":           "What is 2 + 2?",
			"correct_answer":     []string{"4"},
			"incorrect_answer_1": []string{"3"},
			"incorrect_answer_2": []string{"5"},
		},
	}

	insert := func(collection string, data any) {
		raw, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("marshal %s: %v", collection, err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO locale_content (locale, collection, data) VALUES ('en', ?, ?::jsonb)
			 ON CONFLICT (locale, collection) DO UPDATE SET data=EXCLUDED.data`,
			collection, string(raw)); err != nil {
			t.Fatalf("insert %s: %v", collection, err)
		}
	}
	insert(content.CollectionSettings, settings)
	insert(content.CollectionQuestions, questions)
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "trivia", "POSTGRES_PASSWORD": "triviapass", "POSTGRES_DB": "triviadb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://trivia:triviapass@%s:%s/triviadb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
