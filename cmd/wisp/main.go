// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/wisp-social/wisp/comments"
	commentsHandlers "github.com/wisp-social/wisp/comments/handlers"
	commentsRepository "github.com/wisp-social/wisp/comments/repository"
	commentsServices "github.com/wisp-social/wisp/comments/services"
	"github.com/wisp-social/wisp/feed"
	feedHandlers "github.com/wisp-social/wisp/feed/handlers"
	feedServices "github.com/wisp-social/wisp/feed/services"
	"github.com/wisp-social/wisp/follows"
	followsHandlers "github.com/wisp-social/wisp/follows/handlers"
	followsRepository "github.com/wisp-social/wisp/follows/repository"
	followsServices "github.com/wisp-social/wisp/follows/services"
	"github.com/wisp-social/wisp/identity"
	"github.com/wisp-social/wisp/internal/cache"
	"github.com/wisp-social/wisp/internal/database/migrations"
	"github.com/wisp-social/wisp/internal/database/postgres"
	"github.com/wisp-social/wisp/internal/middleware/authbearer"
	platformconfig "github.com/wisp-social/wisp/internal/platform/config"
	"github.com/wisp-social/wisp/internal/server"
	"github.com/wisp-social/wisp/posts"
	postsHandlers "github.com/wisp-social/wisp/posts/handlers"
	postsRepository "github.com/wisp-social/wisp/posts/repository"
	postsServices "github.com/wisp-social/wisp/posts/services"
	"github.com/wisp-social/wisp/reaper"
	"github.com/wisp-social/wisp/storage/provider"
	"github.com/wisp-social/wisp/users"
	usersHandlers "github.com/wisp-social/wisp/users/handlers"
	usersRepository "github.com/wisp-social/wisp/users/repository"
	usersServices "github.com/wisp-social/wisp/users/services"
	"github.com/wisp-social/wisp/votes"
	votesHandlers "github.com/wisp-social/wisp/votes/handlers"
	votesRepository "github.com/wisp-social/wisp/votes/repository"
	votesServices "github.com/wisp-social/wisp/votes/services"
)

func main() {
	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch command {
	case "serve":
		runServe(cfg)
	case "reap":
		runReap(cfg)
	case "migrate":
		runMigrate(cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected serve, reap, or migrate)\n", command)
		os.Exit(2)
	}
}

func runMigrate(cfg *platformconfig.Config) {
	ctx := context.Background()

	client, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Close()

	if err := migrations.Up(client.DB().DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
}

func runReap(cfg *platformconfig.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Close()

	runCtx, cancel := context.WithTimeout(ctx, cfg.Reaper.Timeout)
	defer cancel()

	sweeper := reaper.New(reaper.NewPostgresSweepRepository(client), cfg.Reaper.BatchSize)
	report := sweeper.Run(runCtx)

	log.Printf("Reap finished: posts=%d comments=%d errors=%d duration=%s",
		report.PostsExpired, report.CommentsExpired, len(report.Errors),
		report.FinishedAt.Sub(report.StartedAt))

	if len(report.Errors) > 0 {
		for _, msg := range report.Errors {
			log.Printf("reap error: %s", msg)
		}
		os.Exit(1)
	}
}

func runServe(cfg *platformconfig.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Close()

	blob, err := provider.NewS3Provider(&cfg.Blob)
	if err != nil {
		log.Fatalf("Failed to create blob provider: %v", err)
	}

	resolver, err := identity.NewJWTResolver(&cfg.Identity)
	if err != nil {
		log.Fatalf("Failed to create identity resolver: %v", err)
	}

	identityCache, err := cache.New(ctx, &cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}
	defer identityCache.Close()

	cachedResolver := identity.NewCachedResolver(resolver, identityCache, cfg.Cache.TTL)

	// Repositories
	userRepo := usersRepository.NewPostgresRepository(client)
	postRepo := postsRepository.NewPostgresRepository(client)
	commentRepo := commentsRepository.NewPostgresRepository(client)
	voteRepo := votesRepository.NewPostgresVoteRepository(client)
	followRepo := followsRepository.NewPostgresRepository(client)

	// Services
	userService := usersServices.NewUserService(userRepo)
	postService := postsServices.NewPostService(postRepo, blob)
	commentService := commentsServices.NewCommentService(commentRepo, postRepo)
	voteService := votesServices.NewVoteService(voteRepo, commentRepo, postRepo)
	followService := followsServices.NewFollowService(followRepo, userRepo)
	feedService := feedServices.NewFeedService(postRepo, userService, followService, blob)

	app := server.NewApp(cfg)

	healthHandler := server.NewHealthHandler(cfg.App.Version, client, blob)
	app.Get(cfg.Server.BaseRoute+"/health", healthHandler.Health)

	api := app.Group(cfg.Server.BaseRoute, authbearer.New(authbearer.Config{
		Resolver: cachedResolver,
		Users:    userService,
	}))

	feed.RegisterRoutes(api, &feed.FeedHandlers{
		FeedHandler: feedHandlers.NewFeedHandler(feedService),
	})
	posts.RegisterRoutes(api, &posts.PostsHandlers{
		PostHandler: postsHandlers.NewPostHandler(postService),
	})
	comments.RegisterRoutes(api, &comments.CommentsHandlers{
		CommentHandler: commentsHandlers.NewCommentHandler(commentService),
	})
	votes.RegisterRoutes(api, &votes.VotesHandlers{
		VoteHandler: votesHandlers.NewVoteHandler(voteService),
	})
	follows.RegisterRoutes(api, &follows.FollowsHandlers{
		FollowHandler: followsHandlers.NewFollowHandler(followService),
	})
	users.RegisterRoutes(api, &users.UsersHandlers{
		UserHandler: usersHandlers.NewUserHandler(userService),
	})

	// In-process reaper schedule; an external cron running `wisp reap` is the
	// equivalent alternative.
	if cfg.Reaper.Enabled {
		sweeper := reaper.New(reaper.NewPostgresSweepRepository(client), cfg.Reaper.BatchSize)
		scheduler := reaper.NewScheduler(sweeper, cfg.Reaper.HourUTC, cfg.Reaper.Timeout)
		go scheduler.Start(ctx)
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		_ = app.Shutdown()
	}()

	log.Printf("Starting wisp API server on %s", cfg.Server.ListenAddr)
	if err := app.Listen(cfg.Server.ListenAddr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
