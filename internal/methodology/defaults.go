package methodology

// defaultMethodologies is the catalog shipped with the portal. Requirement
// and exclusion wording is chosen so the built-in predicate rules recognise it.
var defaultMethodologies = []Methodology{
	{
		ID:           "VM0007",
		Name:         "Improved Forest Management",
		Standard:     StandardVerra,
		ProjectTypes: []string{"forestry", "redd+", "afforestation"},
		Countries:    []string{"br", "id", "cd", "pe", "co", "ke", "us", "mx"},
		MinScale:     100,
		MaxScale:     1000000,
		Technologies: []string{"remote sensing", "satellite", "forest inventory", "lidar"},
		Requirements: []string{
			"Demonstrated land ownership or tenure rights",
			"Baseline carbon stock assessment",
			"Monitoring plan covering the full crediting period",
			"Additionality demonstration",
		},
		Exclusions: []string{
			"Projects located in protected areas",
			"Conversion of primary forest",
			"Land cleared of native vegetation within the last 10 years",
		},
		MonitoringRequirements:    []string{"Forest inventory every 5 years", "Annual remote sensing of forest cover"},
		BaselineRequirements:      []string{"Historical deforestation rate over 10 years"},
		AdditionalityRequirements: []string{"Investment or barrier analysis"},
	},
	{
		ID:           "VM0015",
		Name:         "Avoided Grassland Conversion",
		Standard:     StandardVerra,
		ProjectTypes: []string{"grassland", "avoided-conversion"},
		Countries:    []string{"us", "ar", "uy", "mn", "za", "au"},
		MinScale:     500,
		MaxScale:     500000,
		Technologies: []string{"soil sampling", "remote sensing", "grazing management"},
		Requirements: []string{
			"Proof of land ownership",
			"Baseline conversion threat analysis",
			"Soil carbon monitoring protocol",
		},
		Exclusions: []string{
			"Wetland or riparian zones",
			"Conversion mandated by regulation",
		},
		MonitoringRequirements: []string{"Soil organic carbon sampling every 5 years"},
		BaselineRequirements:   []string{"Regional conversion rate analysis"},
	},
	{
		ID:           "VM0033",
		Name:         "Soil Carbon Sequestration",
		Standard:     StandardVerra,
		ProjectTypes: []string{"agriculture", "soil-carbon", "blue-carbon"},
		Countries:    []string{"us", "in", "br", "ke", "au", "fr", "de"},
		MinScale:     50,
		MaxScale:     200000,
		Technologies: []string{"soil sampling", "cover crops", "no-till", "biochar"},
		Requirements: []string{
			"Baseline soil organic carbon measurements",
			"Monitoring plan for soil carbon",
			"Farmer stakeholder consultation",
		},
		Exclusions: []string{
			"Drained peat soils",
		},
		MonitoringRequirements: []string{"Soil cores at 30cm depth"},
	},
	{
		ID:           "GS-AR",
		Name:         "Afforestation/Reforestation GHG Emissions Reduction & Sequestration",
		Standard:     StandardGoldStandard,
		ProjectTypes: []string{"forestry", "afforestation", "reforestation"},
		Countries:    []string{"ke", "ug", "in", "co", "pe", "gh", "et", "np"},
		MinScale:     10,
		MaxScale:     50000,
		Technologies: []string{"nursery", "agroforestry", "forest inventory"},
		Requirements: []string{
			"Land tenure documentation",
			"Local stakeholder consultation",
			"Monitoring plan with sustainable development indicators",
			"Crediting period of at least 30 years",
		},
		Exclusions: []string{
			"Planting on land cleared of natural forest",
			"Projects in protected areas without management consent",
		},
		AdditionalityRequirements: []string{"Positive list or investment analysis"},
	},
	{
		ID:           "GS-TPDDTEC",
		Name:         "Technologies and Practices to Displace Decentralized Thermal Energy Consumption",
		Standard:     StandardGoldStandard,
		ProjectTypes: []string{"cookstoves", "energy-efficiency", "household-energy"},
		Countries:    []string{"ke", "ug", "gh", "ng", "rw", "in", "bd", "np", "mw"},
		MinScale:     0,
		MaxScale:     0,
		Technologies: []string{"cookstove", "biogas", "solar cooker", "efficient stove"},
		Requirements: []string{
			"Technology specification with efficiency testing",
			"Kitchen performance monitoring",
			"Stakeholder consultation with end users",
		},
		Exclusions: []string{
			"Distribution mandated by national regulation",
		},
		MonitoringRequirements: []string{"Annual usage surveys", "Biennial kitchen performance tests"},
	},
	{
		ID:           "ACR-IFM",
		Name:         "Improved Forest Management on Non-Federal U.S. Forestlands",
		Standard:     StandardAmericanCarbonRegistry,
		ProjectTypes: []string{"forestry", "improved-forest-management"},
		Countries:    []string{"us"},
		MinScale:     200,
		MaxScale:     500000,
		Technologies: []string{"forest inventory", "growth model", "lidar"},
		Requirements: []string{
			"Clear land title or timber ownership",
			"Baseline harvest scenario",
			"Monitoring and inventory plan",
			"Minimum 40 year crediting period and permanence commitment",
		},
		Exclusions: []string{
			"Federally protected lands",
			"Harvest levels legally required to be reduced",
		},
		BaselineRequirements: []string{"Common practice harvest analysis"},
	},
	{
		ID:           "ACR-LFG",
		Name:         "Landfill Gas Destruction and Beneficial Use",
		Standard:     StandardAmericanCarbonRegistry,
		ProjectTypes: []string{"landfill-gas", "methane-capture", "waste"},
		Countries:    []string{"us", "ca"},
		MinScale:     0,
		MaxScale:     0,
		Technologies: []string{"flare", "gas collection", "engine", "methane"},
		Requirements: []string{
			"Technology and equipment specification",
			"Continuous monitoring of destroyed methane",
		},
		Exclusions: []string{
			"Gas collection mandated by regulation",
		},
	},
	{
		ID:           "CAR-USFP",
		Name:         "U.S. Forest Protocol",
		Standard:     StandardClimateActionReserve,
		ProjectTypes: []string{"forestry", "reforestation", "improved-forest-management", "avoided-conversion"},
		Countries:    []string{"us"},
		MinScale:     50,
		MaxScale:     1000000,
		Technologies: []string{"forest inventory", "growth model"},
		Requirements: []string{
			"Forest owner documentation",
			"Baseline carbon stock inventory",
			"Monitoring through 100 year permanence period",
		},
		Exclusions: []string{
			"Land cleared within 10 years prior to project start",
		},
	},
	{
		ID:           "CAR-MXFP",
		Name:         "Mexico Forest Protocol",
		Standard:     StandardClimateActionReserve,
		ProjectTypes: []string{"forestry", "reforestation", "agroforestry"},
		Countries:    []string{"mx"},
		MinScale:     10,
		MaxScale:     100000,
		Technologies: []string{"forest inventory", "agroforestry", "nursery"},
		Requirements: []string{
			"Community land tenure (ejido) ownership documentation",
			"Community assembly consultation",
			"Monitoring plan",
		},
		Exclusions: []string{
			"Conversion of primary forest",
		},
	},
}

// DefaultCatalog returns the catalog shipped with the portal
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultMethodologies)
	if err != nil {
		// the built-in records are validated by tests
		panic(err)
	}
	return catalog
}
