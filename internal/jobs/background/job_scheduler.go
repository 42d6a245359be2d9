package background

import (
	"context"
	"log"
	"sync"
	"time"

	"edumart/internal/caching"
	"edumart/internal/repositories"
	"edumart/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages background jobs for distributed environment
type JobScheduler struct {
	scheduler      gocron.Scheduler
	orgService     services.OrganizationService
	cacheSvc       caching.CacheService
	orgRepo        repositories.OrganizationRepository
	departmentRepo repositories.DepartmentRepository
	noticeRepo     repositories.NoticeRepository
	bannerRepo     repositories.BannerRepository
	jobs           map[string]gocron.Job
	mu             sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(orgService services.OrganizationService, cacheSvc caching.CacheService,
	orgRepo repositories.OrganizationRepository, departmentRepo repositories.DepartmentRepository,
	noticeRepo repositories.NoticeRepository, bannerRepo repositories.BannerRepository) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:      scheduler,
		orgService:     orgService,
		cacheSvc:       cacheSvc,
		orgRepo:        orgRepo,
		departmentRepo: departmentRepo,
		noticeRepo:     noticeRepo,
		bannerRepo:     bannerRepo,
		jobs:           make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Subscription expiry sweep - hourly
	expiryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.expireSubscriptions, context.Background()),
		gocron.WithName("subscription-expiry-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create subscription expiry job: %v", err)
	} else {
		js.mu.Lock()
		js.jobs["subscription-expiry"] = expiryJob
		js.mu.Unlock()
	}

	// Public content cache warm - every 10 minutes
	warmJob, err := js.scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(js.warmContentCaches, context.Background()),
		gocron.WithName("content-cache-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create cache warm job: %v", err)
	} else {
		js.mu.Lock()
		js.jobs["content-cache-warm"] = warmJob
		js.mu.Unlock()
	}
}

// expireSubscriptions flips organizations whose paid period has lapsed.
func (js *JobScheduler) expireSubscriptions(ctx context.Context) {
	n, err := js.orgService.ExpireOverdue(ctx)
	if err != nil {
		log.Printf("Subscription expiry sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Subscription expiry sweep marked %d organizations expired", n)
	}
}

// warmContentCaches pre-populates the public content cache for every
// organization so subdomain pages stay fast after invalidation.
func (js *JobScheduler) warmContentCaches(ctx context.Context) {
	orgs, err := js.orgRepo.List(ctx, 500, 0)
	if err != nil {
		log.Printf("Cache warm: failed to list organizations: %v", err)
		return
	}

	const ttl = 10 * time.Minute
	for _, org := range orgs {
		if departments, err := js.departmentRepo.List(ctx, org.ID, 100, 0); err == nil {
			if err := js.cacheSvc.SetContent(ctx, org.Subdomain, "departments", departments, ttl); err != nil {
				log.Printf("Cache warm: departments for %s: %v", org.Subdomain, err)
			}
		}
		if notices, err := js.noticeRepo.List(ctx, org.ID, 100, 0); err == nil {
			if err := js.cacheSvc.SetContent(ctx, org.Subdomain, "notices", notices, ttl); err != nil {
				log.Printf("Cache warm: notices for %s: %v", org.Subdomain, err)
			}
		}
		if banners, err := js.bannerRepo.List(ctx, org.ID, 100, 0); err == nil {
			if err := js.cacheSvc.SetContent(ctx, org.Subdomain, "banners", banners, ttl); err != nil {
				log.Printf("Cache warm: banners for %s: %v", org.Subdomain, err)
			}
		}
	}
}
