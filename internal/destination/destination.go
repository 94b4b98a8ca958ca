package destination

import "strings"

// Destination is a browsable country card, cached for offline use.
type Destination struct {
	// Title is the country's common name and the cache key
	Title string `json:"title"`

	// Subtitle lists the capitals, or "Explore <title>" when none are known
	Subtitle string `json:"subtitle"`

	Description string `json:"description"`

	// Location is the world region, or "Unknown"
	Location string `json:"location"`

	// ImageURL points at the country's flag
	ImageURL string `json:"image_url"`
}

// Country is the subset of a REST Countries v3.1 record used to build a Destination.
type Country struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Region     string   `json:"region"`
	Population int64    `json:"population"`
	Flags      struct {
		PNG string `json:"png"`
	} `json:"flags"`
}

// FromCountry maps a country record to a destination card.
func FromCountry(c Country) Destination {
	name := strings.TrimSpace(c.Name.Common)

	capitals := make([]string, 0, len(c.Capital))
	for _, capital := range c.Capital {
		if s := strings.TrimSpace(capital); s != "" {
			capitals = append(capitals, s)
		}
	}
	subtitle := strings.Join(capitals, ", ")
	if subtitle == "" {
		subtitle = "Explore " + name
	}

	region := strings.TrimSpace(c.Region)
	describedRegion := region
	if describedRegion == "" {
		describedRegion = "the world"
	}
	location := region
	if location == "" {
		location = "Unknown"
	}

	return Destination{
		Title:       name,
		Subtitle:    subtitle,
		Description: "Discover " + name + ", a vibrant destination in " + describedRegion + ".",
		Location:    location,
		ImageURL:    c.Flags.PNG,
	}
}
