package dataset

// The DOL publishes Form 5500 extracts under two generations of its
// electronic filing system. EFAST2 years (2009 onward) live under a
// "Latest" reprocessing directory; EFAST1 years (1999-2008) use a flat
// per-year layout with fewer schedule types.
const (
	efast1First = 1999
	efast1Last  = 2008
	efast2First = 2009
	efast2Last  = 2023
)

// era is a contiguous year range with a fixed stem list and URL shape.
type era struct {
	first, last int
	stems       []string
	latest      bool // EFAST2 "Latest" URL and file naming
}

// Group is one of the four dataset groups. Each group owns its own
// manifest file and enumerates its tasks independently.
type Group struct {
	Name         string
	ManifestName string
	Dictionary   bool
	eras         []era
}

// Groups returns the dataset groups in processing order.
func Groups() []Group {
	return []Group{
		{
			Name:         "efast2_main",
			ManifestName: "download_manifest.csv",
			eras: []era{
				{efast2First, efast2Last, []string{"F_5500", "F_SCH_H", "F_SCH_R", "F_SCH_R_PART1"}, true},
			},
		},
		{
			Name:         "efast1_early",
			ManifestName: "download_manifest_1999_2008.csv",
			eras: []era{
				{efast1First, efast1Last, []string{"F_5500", "F_SCH_H"}, false},
			},
		},
		{
			Name:         "data_dictionaries",
			ManifestName: "dictionary_manifest.csv",
			Dictionary:   true,
			eras: []era{
				{efast2First, efast2Last, nil, false},
			},
		},
		{
			Name:         "schedule_a",
			ManifestName: "download_manifest_sch_a.csv",
			eras: []era{
				{efast1First, efast1Last, []string{"F_5500_SF", "F_SCH_A"}, false},
				{efast2First, efast2Last, []string{"F_5500_SF", "F_SCH_A", "F_SCH_A_PART1"}, true},
			},
		},
	}
}
