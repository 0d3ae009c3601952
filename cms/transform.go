package cms

import (
	"encoding/json"

	"juniorcars/models"
)

// PlaceholderImage is substituted wherever a CMS record is missing an image.
const PlaceholderImage = "/public/img/placeholder.jpg"

type HeroProps struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
	CTALabel string `json:"ctaLabel"`
	CTAURL   string `json:"ctaUrl"`
}

type SlideProps struct {
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
}

type SEOProps struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type PageProps struct {
	Title   string
	Slug    string
	Content string
	Hero    HeroProps
	Slides  []SlideProps
	SEO     SEOProps
}

type SpecsProps struct {
	Engine       string   `json:"engine"`
	Power        string   `json:"power"`
	Transmission string   `json:"transmission"`
	Acceleration string   `json:"acceleration"`
	TopSpeed     string   `json:"topSpeed"`
	Features     []string `json:"features"`
}

type CarSeriesProps struct {
	Name        string
	Slug        string
	Description string
	Price       float64
	Specs       SpecsProps
	Hero        HeroProps
	Slides      []SlideProps
}

// PageToProps maps a CMS page record onto renderer props. Malformed or absent
// JSON blobs degrade to zero values plus placeholder images, never errors.
func PageToProps(page *models.Page) PageProps {
	props := PageProps{
		Title:   page.Title,
		Slug:    page.Slug,
		Content: page.Content,
	}

	json.Unmarshal(page.HeroData, &props.Hero)
	json.Unmarshal(page.CarouselData, &props.Slides)
	json.Unmarshal(page.SEOData, &props.SEO)

	if props.Hero.Title == "" {
		props.Hero.Title = page.Title
	}
	if props.Hero.ImageURL == "" {
		props.Hero.ImageURL = PlaceholderImage
	}
	for i := range props.Slides {
		if props.Slides[i].ImageURL == "" {
			props.Slides[i].ImageURL = PlaceholderImage
		}
	}
	if props.SEO.Title == "" {
		props.SEO.Title = page.Title
	}
	return props
}

// CarSeriesToProps maps a car-series record onto renderer props.
func CarSeriesToProps(series *models.CarSeries) CarSeriesProps {
	props := CarSeriesProps{
		Name:        series.Name,
		Slug:        series.Slug,
		Description: series.Description,
		Price:       series.Price,
	}

	json.Unmarshal(series.Specifications, &props.Specs)
	json.Unmarshal(series.HeroData, &props.Hero)
	json.Unmarshal(series.CarouselData, &props.Slides)

	if props.Hero.Title == "" {
		props.Hero.Title = series.Name
	}
	if props.Hero.ImageURL == "" {
		props.Hero.ImageURL = PlaceholderImage
	}
	for i := range props.Slides {
		if props.Slides[i].ImageURL == "" {
			props.Slides[i].ImageURL = PlaceholderImage
		}
	}
	return props
}
