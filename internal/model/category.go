package model

// Category is a named topical bucket matched by literal phrases
type Category struct {
	Name         string   `json:"category_name" yaml:"category_name" mapstructure:"category_name"`
	MatchPhrases []string `json:"match_phrases" yaml:"match_phrases" mapstructure:"match_phrases"`
}

// Category names used by the narration template
const (
	CategoryFounding   = "Founding_and_Heritage"
	CategoryMilestones = "Milestones_and_Evolution"
	CategoryCampus     = "Campus_Infrastructure"
	CategoryCulture    = "Student_Culture"
	CategoryAcademic   = "Academic_Excellence"
	CategoryAlumni     = "Notable_Alumni"
)

// DefaultCategories returns the categories used to tag news articles.
// The phrases are specific on purpose: articles are long and noisy.
func DefaultCategories() []Category {
	return []Category{
		{
			Name: CategoryFounding,
			MatchPhrases: []string{
				"Lord Irwin", "McPherson Committee Report", "Royal School of Mines",
				"David Penman", "W.H. Berry", "Indian Mines Act",
				"inauguration ceremony 1926", "architectural blueprint",
				"Main Heritage Building", "World War II artillery base",
			},
		},
		{
			Name: CategoryMilestones,
			MatchPhrases: []string{
				"Deemed University Status", "UGC Act Section 3", "Institutes of Technology Act",
				"Gazette Notification 2016", "Prof. G.S. Marwaha", "ISM to IIT conversion",
				"Diamond Jubilee", "Golden Jubilee", "expansion of academic departments",
			},
		},
		{
			Name: CategoryCampus,
			MatchPhrases: []string{
				"Main Heritage Building", "Oval Garden", "Diamond Hostel", "Amber Hostel",
				"Jasper Hostel", "Ruby Hostel", "Penman Auditorium", "Longwall Mine Gallery",
				"Seismological Observatory", "Golden Jubilee Lecture Theatre", "Ramdhani Tea Stall",
			},
		},
		{
			Name: CategoryCulture,
			MatchPhrases: []string{
				"Srijan", "Concetto", "Basant", "Khanan", "ISM Siren", "Fast Forward India",
				"Kartavya NGO", "Chayanika Sangh", "Manthan", "Bhokal", "Pothaa",
				"alumni reunion tradition", "student slang",
			},
		},
		{
			Name: CategoryAcademic,
			MatchPhrases: []string{
				"Department of Petroleum Engineering", "Applied Geology", "Computer Science and Engineering",
				"NVCTI", "Centre for Tinkering and Innovation", "Coal India Limited", "ONGC partnership",
				"Atal Innovation Mission", "seismology research", "mining safety technology",
			},
		},
		{
			Name: CategoryAlumni,
			MatchPhrases: []string{
				"Gulshan Lal Tandon", "Jaswant Singh Gill", "Raniganj Rescue",
				"Harsh Gupta", "Rabi Narayan Bastia", "Waman Bapuji Metre",
				"Shanti Swarup Bhatnagar Award", "Padma Awardees",
			},
		},
	}
}

// DefaultScriptCategories returns the broader phrase lists applied to
// website text when collecting material for the narration script.
func DefaultScriptCategories() []Category {
	return []Category{
		{
			Name: CategoryFounding,
			MatchPhrases: []string{
				"Lord Irwin", "McPherson Committee Report", "Royal School of Mines",
				"David Penman", "W.H. Berry", "Indian Mines Act",
				"inauguration", "Main Heritage Building", "World War II",
			},
		},
		{
			Name: CategoryMilestones,
			MatchPhrases: []string{
				"Deemed University Status", "UGC Act", "Institutes of Technology Act",
				"Gazette Notification", "conversion", "Diamond Jubilee",
				"Golden Jubilee", "expansion",
			},
		},
		{
			Name: CategoryCampus,
			MatchPhrases: []string{
				"Main Heritage Building", "Oval Garden", "Diamond Hostel",
				"Amber Hostel", "Jasper Hostel", "Penman Auditorium",
				"Seismological Observatory", "Lecture Theatre", "Ramdhani",
			},
		},
		{
			Name: CategoryCulture,
			MatchPhrases: []string{
				"Srijan", "Concetto", "Basant", "Khanan", "ISM Siren",
				"Kartavya", "Manthan", "alumni",
			},
		},
		{
			Name: CategoryAcademic,
			MatchPhrases: []string{
				"Petroleum Engineering", "Applied Geology", "Computer Science",
				"NVCTI", "innovation", "research", "Coal India",
				"seismology", "technology",
			},
		},
		{
			Name: CategoryAlumni,
			MatchPhrases: []string{
				"Gulshan Lal Tandon", "Jaswant Singh Gill", "Raniganj Rescue",
				"Rabi Narayan Bastia", "Padma", "Bhatnagar",
			},
		},
	}
}

// DefaultTimelineKeywords returns the flat keyword list used by the
// timeline extractor. A sentence needs one of these plus a year.
func DefaultTimelineKeywords() []string {
	return []string{
		"established", "founded", "inaugurated", "university", "IIT", "status",
		"ranking", "research", "department", "campus", "mining", "petroleum",
		"golden jubilee", "centenary", "president", "director", "notable",
	}
}

// CategoryNames returns the names of the given categories in order
func CategoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}
