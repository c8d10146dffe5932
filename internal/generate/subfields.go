// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import "math/rand"

// Subfield describes one astronomy research area in the built-in knowledge
// base. Challenges seed idea generation when a researcher's interests match
// the subfield.
type Subfield struct {
	Name              string
	Description       string
	CurrentChallenges []string
	RequiredSkills    []string
	RelatedFields     []string
}

// Subfields is the built-in astronomy subfield knowledge base.
var Subfields = []Subfield{
	{
		Name:        "Exoplanet Detection and Characterization",
		Description: "Study of planets orbiting stars outside our solar system, including detection methods, atmospheric composition, and habitability factors.",
		CurrentChallenges: []string{
			"Detecting Earth-like planets in habitable zones",
			"Characterizing exoplanet atmospheres with JWST and ground-based facilities",
			"Understanding formation and evolution of diverse planetary systems",
			"Detecting potential biosignatures in rocky planet atmospheres",
			"Advancing direct imaging techniques for close-in exoplanets",
		},
		RequiredSkills: []string{
			"Data analysis", "Signal processing", "Spectroscopy",
			"Statistical methods", "Programming (Python)",
		},
		RelatedFields: []string{"Planetary science", "Astrobiology", "Stellar astronomy", "Atmospheric physics"},
	},
	{
		Name:        "Galaxy Formation and Evolution",
		Description: "Study of how galaxies form, evolve, and interact across cosmic time.",
		CurrentChallenges: []string{
			"Understanding the role of dark matter in galaxy formation",
			"Reconstructing galaxy merger histories",
			"Explaining galactic morphology diversity",
			"Connecting star formation to galactic environment",
			"Resolving the 'missing satellite' and 'too-big-to-fail' problems",
			"Understanding galaxy-AGN co-evolution",
		},
		RequiredSkills: []string{
			"Computational modeling", "Observational techniques",
			"Data analysis", "Programming", "Statistics",
		},
		RelatedFields: []string{"Cosmology", "Stellar astrophysics", "Computational physics", "High-energy astrophysics"},
	},
	{
		Name:        "Stellar Astrophysics",
		Description: "Study of the physics, formation, and evolution of stars.",
		CurrentChallenges: []string{
			"Modeling complex stellar interiors",
			"Understanding stellar magnetic fields and activity cycles",
			"Explaining stellar mass loss mechanisms",
			"Characterizing stellar populations in different environments",
			"Modeling binary star evolution and common envelope physics",
			"Understanding stellar rotation and mixing processes",
		},
		RequiredSkills: []string{
			"Nuclear physics", "Fluid dynamics", "Spectroscopy",
			"Computational modeling", "Data analysis",
		},
		RelatedFields: []string{"Nuclear physics", "Plasma physics", "Galactic astronomy", "Stellar evolution"},
	},
	{
		Name:        "Observational Cosmology",
		Description: "Study of the large-scale structure, evolution, and fate of the universe through observations.",
		CurrentChallenges: []string{
			"Resolving the Hubble tension and S8 tension",
			"Mapping dark energy properties using BAO and weak lensing",
			"Understanding cosmic reionization processes",
			"Constraining inflation models and primordial gravitational waves",
			"Measuring non-Gaussianity in the CMB",
			"Mapping the cosmic web's gas content with Lyman-alpha forest observations",
		},
		RequiredSkills: []string{
			"Statistical analysis", "Survey techniques", "Image processing",
			"Spectroscopy", "Programming", "Theoretical modeling",
		},
		RelatedFields: []string{"Theoretical cosmology", "Particle physics", "Galaxy evolution", "CMB studies"},
	},
	{
		Name:        "Multi-messenger Astronomy",
		Description: "Integration of information from different astronomical messengers: electromagnetic radiation, gravitational waves, neutrinos, and cosmic rays.",
		CurrentChallenges: []string{
			"Rapid follow-up of transient events",
			"Correlating signals from different messengers",
			"Understanding extreme astrophysical environments",
			"Building comprehensive models from diverse data types",
			"Identifying sources of high-energy neutrinos",
			"Detecting continuous gravitational waves from neutron stars",
		},
		RequiredSkills: []string{
			"Signal processing", "Real-time data analysis", "Programming",
			"Statistics", "Knowledge of multiple detector physics",
		},
		RelatedFields: []string{"High-energy astrophysics", "Gravitational physics", "Neutrino physics", "Time-domain astronomy"},
	},
	{
		Name:        "Astronomical Instrumentation",
		Description: "Development and improvement of instruments and techniques for astronomical observations.",
		CurrentChallenges: []string{
			"Building more sensitive detectors across the electromagnetic spectrum",
			"Developing adaptive optics for ground-based telescopes",
			"Creating more efficient spectrographs",
			"Advancing data processing pipelines for large surveys",
			"Implementing quantum sensors for ultra-sensitive measurements",
			"Developing AI/ML for instrument control and calibration",
		},
		RequiredSkills: []string{
			"Optics", "Electronics", "Signal processing", "Programming",
			"Mechanical engineering", "Cryogenics",
		},
		RelatedFields: []string{"Engineering", "Computer science", "Optics", "Data science"},
	},
	{
		Name:        "Astrobiology",
		Description: "Study of the origin, evolution, and distribution of life in the universe.",
		CurrentChallenges: []string{
			"Defining biosignatures for remote detection",
			"Understanding extremophile adaptations",
			"Modeling habitable environments beyond Earth",
			"Developing techniques to detect microbial life remotely",
			"Characterizing the origins of organic molecules in space",
			"Assessing the prevalence of habitable worlds",
		},
		RequiredSkills: []string{
			"Biology", "Chemistry", "Geology", "Spectroscopy",
			"Data analysis", "Interdisciplinary thinking",
		},
		RelatedFields: []string{"Exoplanet science", "Biochemistry", "Planetary science", "Evolutionary biology"},
	},
	{
		Name:        "Solar Physics",
		Description: "Study of the Sun, its structure, dynamics, and impact on the solar system.",
		CurrentChallenges: []string{
			"Understanding the solar dynamo and activity cycle",
			"Predicting solar flares and coronal mass ejections",
			"Explaining coronal heating",
			"Modeling solar wind-planetary interactions",
			"Characterizing the Sun's interior with helioseismology",
			"Understanding magnetic reconnection processes",
		},
		RequiredSkills: []string{
			"Plasma physics", "Magnetohydrodynamics", "Image processing",
			"Time series analysis", "Programming",
		},
		RelatedFields: []string{"Plasma physics", "Space weather", "Stellar astrophysics", "Heliophysics"},
	},
	{
		Name:        "High-Energy Astrophysics",
		Description: "Study of extremely energetic processes and objects in the universe, including black holes, neutron stars, and active galactic nuclei.",
		CurrentChallenges: []string{
			"Testing general relativity in strong-field regimes",
			"Understanding accretion physics around compact objects",
			"Characterizing the population of intermediate-mass black holes",
			"Explaining the physics of relativistic jets",
			"Modeling supernova explosions and their remnants",
			"Understanding gamma-ray burst mechanisms",
		},
		RequiredSkills: []string{
			"Relativistic physics", "X-ray and gamma-ray astronomy techniques",
			"Computational modeling", "Data analysis", "Programming",
		},
		RelatedFields: []string{"Theoretical physics", "Particle physics", "Cosmology", "Multi-messenger astronomy"},
	},
	{
		Name:        "Planetary Science (Solar System)",
		Description: "Study of planets, moons, asteroids, comets, and other bodies in our solar system, their compositions, dynamics, and histories.",
		CurrentChallenges: []string{
			"Characterizing ocean worlds (Europa, Enceladus) for potential habitability",
			"Understanding atmospheric dynamics of gas giants",
			"Determining the composition and structure of Kuiper Belt objects",
			"Mapping the distribution of volatiles on Mars and the Moon",
			"Reconstructing the early dynamical history of the solar system",
			"Understanding the processes that shape planetary surfaces",
		},
		RequiredSkills: []string{
			"Geology", "Atmospheric science", "Remote sensing",
			"Spectroscopy", "Orbital dynamics", "GIS techniques",
		},
		RelatedFields: []string{"Geology", "Atmospheric science", "Astrobiology", "Space exploration"},
	},
	{
		Name:        "Interstellar Medium and Star Formation",
		Description: "Study of the gas and dust between stars and the processes by which this material collapses to form new stars and planetary systems.",
		CurrentChallenges: []string{
			"Understanding molecular cloud collapse mechanisms",
			"Characterizing magnetic field structures in star-forming regions",
			"Modeling turbulence in the interstellar medium",
			"Tracing the evolution from prestellar cores to protostars",
			"Understanding the role of feedback in regulating star formation",
			"Characterizing the chemical evolution of star-forming regions",
		},
		RequiredSkills: []string{
			"Radio astronomy", "Infrared astronomy", "Magnetohydrodynamics",
			"Computational modeling", "Molecular spectroscopy", "Data analysis",
		},
		RelatedFields: []string{"Stellar astrophysics", "Astrochemistry", "Galaxy evolution", "Molecular physics"},
	},
	{
		Name:        "Time-Domain Astronomy",
		Description: "Study of astronomical objects that change or vary with time, including transients, variables, and moving objects.",
		CurrentChallenges: []string{
			"Rapid classification of transient events",
			"Understanding unusual transient classes (e.g., fast radio bursts)",
			"Coordinating multi-facility follow-up campaigns",
			"Developing efficient methods to process the coming flood of time-domain data",
			"Characterizing stellar variability across different populations",
			"Detecting and tracking potentially hazardous near-Earth objects",
		},
		RequiredSkills: []string{
			"Time series analysis", "Machine learning", "Real-time data processing",
			"Observational techniques", "Programming", "Statistical methods",
		},
		RelatedFields: []string{"Multi-messenger astronomy", "Stellar astrophysics", "Survey science", "Data science"},
	},
}

// relevantSubfields returns subfields matching the researcher's interests,
// either by name or through a related field. When nothing matches, two
// subfields are drawn at random so generation always has seed material.
func relevantSubfields(interests []string, rng *rand.Rand) []Subfield {
	var relevant []Subfield
	for _, sf := range Subfields {
		if subfieldMatches(sf, interests) {
			relevant = append(relevant, sf)
		}
	}
	if len(relevant) > 0 {
		return relevant
	}

	perm := rng.Perm(len(Subfields))
	return []Subfield{Subfields[perm[0]], Subfields[perm[1]]}
}

func subfieldMatches(sf Subfield, interests []string) bool {
	for _, interest := range interests {
		if interest == sf.Name {
			return true
		}
		for _, related := range sf.RelatedFields {
			if interest == related {
				return true
			}
		}
	}
	return false
}
