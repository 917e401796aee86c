package pet

// Stage is the companion's life stage by age.
type Stage string

const (
	StageNewborn Stage = "newborn"
	StageGrowing Stage = "growing"
	StageMature  Stage = "mature"
	StageElder   Stage = "elder"
)

const (
	growingAge = 6
	matureAge  = 12
	elderAge   = 24
)

// StageFor returns the life stage for an age in hours.
func StageFor(ageHours int) Stage {
	switch {
	case ageHours >= elderAge:
		return StageElder
	case ageHours >= matureAge:
		return StageMature
	case ageHours >= growingAge:
		return StageGrowing
	default:
		return StageNewborn
	}
}

type tier struct {
	stat   Stat
	titles [3]string // >=50, >=75, >=100
}

var statTiers = []tier{
	{Spirituality, [3]string{"Spiritual Seeker", "Spiritual Guide", "Spiritual Master"}},
	{Health, [3]string{"Good Health", "Vibrant Health", "Peak Health"}},
	{Energy, [3]string{"Active", "Energetic", "Boundless Energy"}},
	{Happiness, [3]string{"Content", "Joyful", "Blissful"}},
}

// MasteryTitle is awarded when every stat is at its maximum.
const MasteryTitle = "Mastery"

// Achievements lists the titles earned by the current stats and age. Each
// stat contributes at most its highest tier.
func Achievements(s Stats, ageHours int) []string {
	var out []string
	for _, t := range statTiers {
		v := s.Get(t.stat)
		switch {
		case v >= 100:
			out = append(out, t.titles[2])
		case v >= 75:
			out = append(out, t.titles[1])
		case v >= 50:
			out = append(out, t.titles[0])
		}
	}

	switch StageFor(ageHours) {
	case StageElder:
		out = append(out, "Wise Elder")
	case StageMature:
		out = append(out, "Mature Soul")
	case StageGrowing:
		out = append(out, "Growing Soul")
	}

	if s.Health >= MaxStat && s.Spirituality >= MaxStat && s.Energy >= MaxStat && s.Happiness >= MaxStat {
		out = append(out, MasteryTitle)
	}
	return out
}
