package controller

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/dalil-mashhad/dalil-backend/config"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
)

const (
	defaultFeedItems = 20
	maxFeedItems     = 100
	feedSummaryRunes = 280
)

// FeedController publishes newly added doctors and attractions as RSS.
type FeedController struct {
	doctorService     service.DoctorService
	attractionService service.AttractionService
	cfg               config.FeedConfig
	now               func() time.Time
}

func NewFeedController(
	doctorService service.DoctorService,
	attractionService service.AttractionService,
	cfg config.FeedConfig,
) *FeedController {
	return &FeedController{
		doctorService:     doctorService,
		attractionService: attractionService,
		cfg:               cfg,
		now:               time.Now,
	}
}

func summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= feedSummaryRunes {
		return text
	}
	return string(runes[:feedSummaryRunes]) + "…"
}

// RSS lists the newest active listings, both kinds merged by creation time
// GET /api/v1/feed.rss?limit=20
func (ctrl *FeedController) RSS(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultFeedItems)))
	if err != nil || limit < 1 || limit > maxFeedItems {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "الحد يجب أن يكون بين 1 و 100")
		return
	}

	doctors, _, err := ctrl.doctorService.ListPublic(repository.DoctorFilter{
		SortBy: repository.DoctorSortNewest,
		Limit:  limit,
	})
	if err != nil {
		log.Error("Unable to fetch doctors for feed", err)
		apperrors.InternalError(c, "")
		return
	}
	attractions, _, err := ctrl.attractionService.ListPublic(repository.AttractionFilter{
		NewestFirst: true,
		Limit:       limit,
	})
	if err != nil {
		log.Error("Unable to fetch attractions for feed", err)
		apperrors.InternalError(c, "")
		return
	}

	items := make([]*feeds.Item, 0, len(doctors)+len(attractions))
	for _, d := range doctors {
		link := fmt.Sprintf("%s/doctors/%d", ctrl.cfg.SiteURL, d.ID)
		items = append(items, &feeds.Item{
			Id:          link,
			IsPermaLink: "true",
			Title:       d.NameAr + " - " + d.TitleAr,
			Link:        &feeds.Link{Href: link},
			Description: summarize(d.BioAr),
			Created:     d.CreatedAt,
			Updated:     d.UpdatedAt,
		})
	}
	for _, a := range attractions {
		link := fmt.Sprintf("%s/attractions/%s", ctrl.cfg.SiteURL, a.Slug)
		items = append(items, &feeds.Item{
			Id:          link,
			IsPermaLink: "true",
			Title:       a.NameAr,
			Link:        &feeds.Link{Href: link},
			Description: summarize(a.DescriptionAr),
			Created:     a.CreatedAt,
			Updated:     a.UpdatedAt,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Created.After(items[j].Created)
	})
	if len(items) > limit {
		items = items[:limit]
	}

	feed := &feeds.Feed{
		Title:       ctrl.cfg.Title,
		Link:        &feeds.Link{Href: ctrl.cfg.SiteURL},
		Description: "أحدث الأطباء والمعالم السياحية المضافة إلى الدليل",
		Created:     ctrl.now(),
		Items:       items,
	}

	rss, err := feed.ToRss()
	if err != nil {
		log.Error("Unable to format feed as RSS", err)
		apperrors.InternalError(c, "")
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("max-age=%d", int(ctrl.cfg.CacheMaxAge.Seconds())))
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
