package nexus

// SampleMods is the offline fallback set used when the live API is
// unreachable or returns nothing. Comments are never fetched for sample
// data, so comment-based scoring signals stay silent in fallback mode.
func SampleMods(gameDomain string) []ModSummary {
	ts := func(v int64) *int64 { return &v }

	switch gameDomain {
	case "fallout4":
		return []ModSummary{
			{
				ModID:             48401,
				Name:              "Fallout 4 Script Extender (F4SE)",
				Summary:           "Expands scripting capabilities. Compatible with 1.10.984.",
				Version:           "0.7.2",
				Author:            "ianpatt",
				ModPageURL:        "https://www.nexusmods.com/fallout4/mods/42147",
				UpdatedTimestamp:  ts(1715650000),
				CreatedTimestamp:  ts(1447000000),
				UploadedTimestamp: ts(1447000000),
			},
			{
				ModID:            3258,
				Name:             "Armor and Weapon Keywords Community Resource",
				Summary:          "Framework keywords shared across armor and weapon mods.",
				Version:          "8.6.0",
				Author:           "Valdacil",
				ModPageURL:       "https://www.nexusmods.com/fallout4/mods/6091",
				UpdatedTimestamp: ts(1620000000),
			},
			{
				ModID:             11111,
				Name:              "Wasteland Flora Overhaul",
				Summary:           "Some issues reported after the next-gen update.",
				Description:       "Partially working on newer patches, minor issues with LOD.",
				Version:           "2.0",
				Author:            "vurt",
				ModPageURL:        "https://www.nexusmods.com/fallout4/mods/70",
				UploadedTimestamp: ts(1590000000),
			},
		}
	default:
		return []ModSummary{
			{
				ModID:             30379,
				Name:              "Skyrim Script Extender (SKSE64)",
				Summary:           "Expands scripting capabilities. SSE 1.6.1170 compatible.",
				Version:           "2.2.6",
				Author:            "ianpatt",
				ModPageURL:        "https://www.nexusmods.com/skyrimspecialedition/mods/30379",
				UpdatedTimestamp:  ts(1705700000),
				CreatedTimestamp:  ts(1509000000),
				UploadedTimestamp: ts(1509000000),
			},
			{
				ModID:            32444,
				Name:             "Address Library for SKSE Plugins",
				Summary:          "Resource for SKSE plugin developers, updated for 1.6.1170.",
				Version:          "11",
				Author:           "meh321",
				ModPageURL:       "https://www.nexusmods.com/skyrimspecialedition/mods/32444",
				UpdatedTimestamp: ts(1705900000),
			},
			{
				ModID:            12604,
				Name:             "Immersive Citizens - AI Overhaul",
				Summary:          "Overhauls NPC behavior across Skyrim.",
				Description:      "Known to be broken with some city overhauls.",
				Version:          "0.4.0.3",
				Author:           "Arnaud dOrchymont",
				ModPageURL:       "https://www.nexusmods.com/skyrimspecialedition/mods/173",
				UpdatedTimestamp: ts(1540000000),
			},
			{
				ModID:             1179,
				Name:              "SkyUI",
				Summary:           "Elegant, PC-friendly interface mod with extra features.",
				Version:           "5.2SE",
				Author:            "SkyUI Team",
				ModPageURL:        "https://www.nexusmods.com/skyrimspecialedition/mods/12604",
				UploadedTimestamp: ts(1510000000),
			},
		}
	}
}
