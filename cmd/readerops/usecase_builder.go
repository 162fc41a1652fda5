package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/yaegashi/readerops/adapters/analytics"
	"github.com/yaegashi/readerops/adapters/network"
	"github.com/yaegashi/readerops/adapters/wpcom"
	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/htmlmsg"
	"github.com/yaegashi/readerops/usecase/blog"
	"github.com/yaegashi/readerops/usecase/note"
	"github.com/yaegashi/readerops/usecase/post"
	"github.com/yaegashi/readerops/usecase/reminder"
)

var formatter = htmlmsg.NewFormatter(language.English)

// ports are the remote-facing collaborators shared by action use cases.
type ports struct {
	client    *wpcom.Client
	network   model.NetworkPort
	analytics model.AnalyticsPort
	userID    int64
}

func buildPorts(cmd *cobra.Command, b *backend) *ports {
	var net model.NetworkPort = network.NewProbe(envConfig.ProbeAddr, envConfig.ProbeTTL)
	if offline, _ := cmd.Flags().GetBool("offline"); offline || envConfig.Offline {
		net = network.Static(false)
	}
	sinks := analytics.Multi{analytics.LogSink{}}
	if b.events != nil {
		sinks = append(sinks, &analytics.RecordSink{Store: b.events})
	}
	userID := envConfig.UserID
	if userID == 0 {
		userID = b.account.UserID
	}
	return &ports{
		client: wpcom.New(wpcom.Options{
			BaseURL:  envConfig.BaseURL(b.apiBaseURL),
			PixelURL: envConfig.PixelURL,
			Token:    envConfig.APIToken,
			Timeout:  envConfig.HTTPTimeout,
		}),
		network:   net,
		analytics: sinks,
		userID:    userID,
	}
}

// buildPostUseCase creates post use case with required repositories and ports.
func buildPostUseCase(cmd *cobra.Command) (*post.UseCase, error) {
	b, err := openBackend(cmd)
	if err != nil {
		return nil, err
	}
	p := buildPorts(cmd, b)
	return &post.UseCase{
		Repos:          &post.Repos{Post: b.repos.Post},
		PostActionPort: p.client,
		Network:        p.network,
		Analytics:      p.analytics,
		UserID:         p.userID,
	}, nil
}

// buildBlogUseCase creates blog use case with required repositories and ports.
func buildBlogUseCase(cmd *cobra.Command) (*blog.UseCase, error) {
	b, err := openBackend(cmd)
	if err != nil {
		return nil, err
	}
	p := buildPorts(cmd, b)
	return &blog.UseCase{
		Repos:          &blog.Repos{Blog: b.repos.Blog, Post: b.repos.Post, UoW: b.uow},
		BlogActionPort: p.client,
		Network:        p.network,
		Analytics:      p.analytics,
	}, nil
}

// buildNoteUseCase creates note use case with required repositories.
func buildNoteUseCase(cmd *cobra.Command) (*note.UseCase, error) {
	b, err := openBackend(cmd)
	if err != nil {
		return nil, err
	}
	return &note.UseCase{Repos: &note.Repos{Note: b.repos.Note, UoW: b.uow}}, nil
}

// buildReminderUseCase creates reminder use case with required repositories.
func buildReminderUseCase(cmd *cobra.Command) (*reminder.UseCase, error) {
	b, err := openBackend(cmd)
	if err != nil {
		return nil, err
	}
	return &reminder.UseCase{Repos: &reminder.Repos{Reminder: b.repos.Reminder}, Formatter: formatter}, nil
}
