package mockapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	logx "github.com/voyago-poc/server/pkg/logger"
)

// ImageAPI simulates an image search provider. URLs point at Wikimedia
// Commons, which is stable and allows hotlinking.
type ImageAPI struct {
	Latency time.Duration
}

func NewImageAPI(latency time.Duration) *ImageAPI {
	return &ImageAPI{Latency: latency}
}

var imageTables = map[string][]string{
	"Paris": {
		"https://upload.wikimedia.org/wikipedia/commons/thumb/4/4b/La_Tour_Eiffel_vue_de_la_Tour_Saint-Jacques_-_Paris_-_20140824.jpg/640px-La_Tour_Eiffel_vue_de_la_Tour_Saint-Jacques_-_Paris_-_20140824.jpg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/6/66/Louvre_Museum_Wikimedia_Commons.jpg/640px-Louvre_Museum_Wikimedia_Commons.jpg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/d/d6/Paris_Night.jpg/640px-Paris_Night.jpg",
	},
	"Tokyo": {
		"https://upload.wikimedia.org/wikipedia/commons/thumb/b/b2/Skyscrapers_of_Shinjuku_2009_January.jpg/640px-Skyscrapers_of_Shinjuku_2009_January.jpg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/4/4e/Tokyo_from_the_top_of_the_SkyTree.JPG/440px-Tokyo_from_the_top_of_the_SkyTree.JPG",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/9/95/Tokyo_station_from_marunouchi_oazo.JPG/640px-Tokyo_station_from_marunouchi_oazo.JPG",
	},
	"New York": {
		"https://upload.wikimedia.org/wikipedia/commons/thumb/0/05/View_of_Empire_State_Building_from_Rockefeller_Center_New_York_City_dllu.jpg/640px-View_of_Empire_State_Building_from_Rockefeller_Center_New_York_City_dllu.jpg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/c/c7/Empire_State_Building_from_the_Top_of_the_Rock.jpg/640px-Empire_State_Building_from_the_Top_of_the_Rock.jpg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/b/b9/Above_Gotham.jpg/640px-Above_Gotham.jpg",
	},
	"London": {
		"https://upload.wikimedia.org/wikipedia/commons/thumb/6/67/London_Skyline_%28125508655%29.jpeg/640px-London_Skyline_%28125508655%29.jpeg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/8/87/Palace_of_Westminster_from_the_dome_on_Methodist_Central_Hall.jpg/640px-Palace_of_Westminster_from_the_dome_on_Methodist_Central_Hall.jpg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/e/e4/Palace_of_Westminster_from_the_dome_on_Methodist_Central_Hall_%28cropped%29.jpg/640px-Palace_of_Westminster_from_the_dome_on_Methodist_Central_Hall_%28cropped%29.jpg",
	},
	"Sydney": {
		"https://upload.wikimedia.org/wikipedia/commons/thumb/5/53/Sydney_Opera_House_and_Harbour_Bridge_Dusk_%282%29_2019.jpg/640px-Sydney_Opera_House_and_Harbour_Bridge_Dusk_%282%29_2019.jpg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/7/7c/Sydney_Opera_House_-_Dec_2008.jpg/640px-Sydney_Opera_House_-_Dec_2008.jpg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/2/2e/Bondi_Beach_2006.jpg/640px-Bondi_Beach_2006.jpg",
	},
}

// CityImages returns at least three image URLs for the city, with placeholders
// for unknown destinations. Lookup is case-insensitive.
func (a *ImageAPI) CityImages(ctx context.Context, city string) ([]string, error) {
	if err := sleep(ctx, a.Latency); err != nil {
		return nil, err
	}

	for key, urls := range imageTables {
		if strings.EqualFold(key, city) {
			out := make([]string, len(urls))
			copy(out, urls)
			return out, nil
		}
	}

	logx.Debug().Str("city", city).Msg("image api: no entry, returning placeholders")
	return []string{
		fmt.Sprintf("https://placehold.co/600x400?text=%s+Image+1", city),
		fmt.Sprintf("https://placehold.co/600x400?text=%s+Image+2", city),
		fmt.Sprintf("https://placehold.co/600x400?text=%s+Image+3", city),
	}, nil
}
