package site

import (
	"juniorcars/cms"
	"juniorcars/models"
)

// Hard-coded fallback content. The public site prefers stale or default
// content over a broken page, so every renderer has a static stand-in for
// when the CMS is unreachable or a record is missing.

func fallbackNav() []models.NavigationItem {
	return []models.NavigationItem{
		{Label: "Home", URL: "/"},
		{Label: "Car Series", URL: "/series"},
		{Label: "Wall Art", URL: "/wall-art"},
		{Label: "About", URL: "/about"},
		{Label: "Contact", URL: "/contact"},
	}
}

func fallbackHome() cms.PageProps {
	return cms.PageProps{
		Title: "JuniorCars",
		Slug:  "home",
		Hero: cms.HeroProps{
			Title:    "Handcrafted Junior Cars",
			Subtitle: "Scale replicas of classic racing legends, built to drive",
			ImageURL: cms.PlaceholderImage,
			CTALabel: "Explore the series",
			CTAURL:   "/series",
		},
		SEO: cms.SEOProps{
			Title:       "JuniorCars - Handcrafted Junior Cars",
			Description: "Scale replicas of classic racing cars, handcrafted and drivable.",
		},
	}
}

func fallbackPage(slug string) cms.PageProps {
	switch slug {
	case "about":
		return cms.PageProps{
			Title:   "About JuniorCars",
			Slug:    slug,
			Content: "JuniorCars builds handcrafted, drivable scale replicas of classic racing cars.",
			Hero:    cms.HeroProps{Title: "About JuniorCars", ImageURL: cms.PlaceholderImage},
		}
	case "contact":
		return cms.PageProps{
			Title: "Contact",
			Slug:  slug,
			Hero:  cms.HeroProps{Title: "Get in touch", ImageURL: cms.PlaceholderImage},
		}
	case "wall-art":
		return cms.PageProps{
			Title:   "Wall Art",
			Slug:    slug,
			Content: "Automotive art prints from the JuniorCars workshop.",
			Hero:    cms.HeroProps{Title: "Wall Art", ImageURL: cms.PlaceholderImage},
		}
	default:
		return cms.PageProps{
			Title: "JuniorCars",
			Slug:  slug,
			Hero:  cms.HeroProps{Title: "JuniorCars", ImageURL: cms.PlaceholderImage},
		}
	}
}

func fallbackSeries() []cms.CarSeriesProps {
	return []cms.CarSeriesProps{
		{
			Name:        "Classic Racer",
			Slug:        "classic-racer",
			Description: "Our original junior car, modeled on the grand prix racers of the 1950s.",
			Hero:        cms.HeroProps{Title: "Classic Racer", ImageURL: cms.PlaceholderImage},
		},
	}
}
