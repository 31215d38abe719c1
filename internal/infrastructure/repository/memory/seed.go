package memory

import (
	"strconv"

	"github.com/birdieboard/birdieboard/internal/domain/course"
	"github.com/birdieboard/birdieboard/internal/domain/profile"
)

const (
	CourseIDPineRidge   = "crs-pine-ridge"
	CourseIDHarborLinks = "crs-harbor-links"

	TeeIDPineRidgeWhite  = "tee-pine-ridge-white"
	TeeIDPineRidgeBlue   = "tee-pine-ridge-blue"
	TeeIDHarborLinksGold = "tee-harbor-links-gold"
)

func SeedCourses() []course.Course {
	return []course.Course{
		{ID: CourseIDPineRidge, Name: "Pine Ridge Golf Club", City: "Bend", Country: "US", HoleCount: 18},
		{ID: CourseIDHarborLinks, Name: "Harbor Links", City: "Galway", Country: "IE", HoleCount: 9},
	}
}

func SeedTeeBoxes() []course.TeeBox {
	return []course.TeeBox{
		{ID: TeeIDPineRidgeWhite, CourseID: CourseIDPineRidge, Name: "White", Par: 72, Yards: 6250, Rating: 70.1, Slope: 126},
		{ID: TeeIDPineRidgeBlue, CourseID: CourseIDPineRidge, Name: "Blue", Par: 72, Yards: 6710, Rating: 72.4, Slope: 131},
		{ID: TeeIDHarborLinksGold, CourseID: CourseIDHarborLinks, Name: "Gold", Par: 35, Yards: 3020, Rating: 34.6, Slope: 118},
	}
}

// SeedHoles builds a plausible 18-hole layout for each Pine Ridge tee and
// a 9-hole layout for Harbor Links. Pars cycle through a standard mix with
// two par 5s and two par 3s per nine.
func SeedHoles() []course.Hole {
	pars := []int{4, 5, 3, 4, 4, 5, 4, 3, 4}

	var out []course.Hole
	build := func(teeBoxID string, holeCount, baseYards int) {
		for n := 1; n <= holeCount; n++ {
			par := pars[(n-1)%len(pars)]
			out = append(out, course.Hole{
				ID:          teeBoxID + "-h" + strconv.Itoa(n),
				TeeBoxID:    teeBoxID,
				Number:      n,
				Par:         par,
				Yards:       baseYards + par*55 + n*3,
				StrokeIndex: ((n * 7) % holeCount) + 1,
			})
		}
	}
	build(TeeIDPineRidgeWhite, 18, 120)
	build(TeeIDPineRidgeBlue, 18, 150)
	build(TeeIDHarborLinksGold, 9, 110)
	return out
}

func SeedProfiles() []profile.Profile {
	return []profile.Profile{
		{ID: "prof-ada", DisplayName: "Ada Byrne"},
		{ID: "prof-ben", DisplayName: "Ben Okafor"},
		{ID: "prof-cleo", DisplayName: "Cleo Tan"},
		{ID: "prof-dara", DisplayName: "Dara Moss"},
	}
}

func SeedFollows() []profile.Follow {
	return []profile.Follow{
		{FollowerID: "prof-ben", FolloweeID: "prof-ada"},
		{FollowerID: "prof-cleo", FolloweeID: "prof-ada"},
		{FollowerID: "prof-ada", FolloweeID: "prof-ben"},
		{FollowerID: "prof-dara", FolloweeID: "prof-cleo"},
	}
}
