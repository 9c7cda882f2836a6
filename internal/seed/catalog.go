// Package seed holds the built-in formula catalog and the one-shot
// migration that loads it into MongoDB.
package seed

import "github.com/formulabase/formulactl/internal/formula"

// pi is embedded into equation strings so they stay self-contained
// expressions, matching the stored document format.
const pi = "3.141592653589793"

// Catalog returns the built-in formulas with full metadata.
func Catalog() []formula.Formula {
	return []formula.Formula{
		// Mechanics - Energy
		{
			FormulaID:   "kinetic_energy",
			Name:        "Kinetic Energy",
			Description: "Kinetic energy: KE = ½mv²",
			Equation:    "energy = 0.5 * mass * velocity**2",
			Variables:   []string{"energy", "mass", "velocity"},
			VariableDetails: []formula.Variable{
				{Name: "energy", Description: "Kinetic energy", Unit: "J"},
				{Name: "mass", Description: "Object mass", Unit: "kg"},
				{Name: "velocity", Description: "Object velocity", Unit: "m/s"},
			},
			Category: "mechanics",
			Tags:     []string{"physics", "energy", "motion", "mechanics"},
		},

		// Mechanics - Forces and Motion
		{
			FormulaID:   "force",
			Name:        "Newton's Second Law",
			Description: "Newton's second law: F = ma",
			Equation:    "force = mass * acceleration",
			Variables:   []string{"force", "mass", "acceleration"},
			VariableDetails: []formula.Variable{
				{Name: "force", Description: "Net force", Unit: "N"},
				{Name: "mass", Description: "Object mass", Unit: "kg"},
				{Name: "acceleration", Description: "Acceleration", Unit: "m/s²"},
			},
			Category: "mechanics",
			Tags:     []string{"physics", "force", "motion", "mechanics", "newton"},
		},
		{
			FormulaID:   "momentum",
			Name:        "Momentum",
			Description: "Momentum: p = mv",
			Equation:    "momentum = mass * velocity",
			Variables:   []string{"momentum", "mass", "velocity"},
			VariableDetails: []formula.Variable{
				{Name: "momentum", Description: "Linear momentum", Unit: "kg·m/s"},
				{Name: "mass", Description: "Object mass", Unit: "kg"},
				{Name: "velocity", Description: "Object velocity", Unit: "m/s"},
			},
			Category: "mechanics",
			Tags:     []string{"physics", "momentum", "motion", "mechanics"},
		},

		// Wave Physics
		{
			FormulaID:   "wave_equation",
			Name:        "Wave Equation",
			Description: "Wave equation: v = fλ",
			Equation:    "speed = frequency * wavelength",
			Variables:   []string{"speed", "frequency", "wavelength"},
			VariableDetails: []formula.Variable{
				{Name: "speed", Description: "Wave speed", Unit: "m/s"},
				{Name: "frequency", Description: "Wave frequency", Unit: "Hz"},
				{Name: "wavelength", Description: "Wavelength", Unit: "m"},
			},
			Category: "waves",
			Tags:     []string{"physics", "waves", "oscillation"},
		},
		{
			FormulaID:   "angular_wavenumber",
			Name:        "Angular Wavenumber",
			Description: "Angular wavenumber: k = 2π/λ",
			Equation:    "wavenumber = 2 * " + pi + " / wavelength",
			Variables:   []string{"wavenumber", "wavelength"},
			VariableDetails: []formula.Variable{
				{Name: "wavenumber", Description: "Angular wavenumber", Unit: "rad/m"},
				{Name: "wavelength", Description: "Wavelength", Unit: "m"},
			},
			Category: "waves",
			Tags:     []string{"physics", "waves", "wavenumber"},
		},
		{
			FormulaID:   "angular_frequency",
			Name:        "Angular Frequency",
			Description: "Angular frequency: ω = 2πf",
			Equation:    "angular_frequency = 2 * " + pi + " * frequency",
			Variables:   []string{"angular_frequency", "frequency"},
			VariableDetails: []formula.Variable{
				{Name: "angular_frequency", Description: "Angular frequency", Unit: "rad/s"},
				{Name: "frequency", Description: "Frequency", Unit: "Hz"},
			},
			Category: "waves",
			Tags:     []string{"physics", "waves", "oscillation"},
		},

		// Plasma Physics
		{
			FormulaID:   "alfven_speed",
			Name:        "Alfvén Speed",
			Description: "Alfvén speed: v_A = B/√(μ₀ρ)",
			Equation:    "alfven_speed = magnetic_field / (4e-7 * " + pi + " * mass_density)**0.5",
			Variables:   []string{"alfven_speed", "magnetic_field", "mass_density"},
			VariableDetails: []formula.Variable{
				{Name: "alfven_speed", Description: "Alfvén wave speed", Unit: "m/s"},
				{Name: "magnetic_field", Description: "Magnetic field strength", Unit: "T"},
				{Name: "mass_density", Description: "Mass density", Unit: "kg/m³"},
			},
			Category: "plasma",
			Tags:     []string{"physics", "plasma", "magnetohydrodynamics", "MHD"},
		},
		{
			FormulaID:   "kink_mode_growth_time",
			Name:        "Kink Mode Growth Time",
			Description: "Kink mode growth time: τ = 1/(v_A × k)",
			Equation:    "growth_time = 1 / (alfven_speed * wavenumber)",
			Variables:   []string{"growth_time", "alfven_speed", "wavenumber"},
			VariableDetails: []formula.Variable{
				{Name: "growth_time", Description: "Instability growth time", Unit: "s"},
				{Name: "alfven_speed", Description: "Alfvén wave speed", Unit: "m/s"},
				{Name: "wavenumber", Description: "Wavenumber", Unit: "rad/m"},
			},
			Category: "plasma",
			Tags:     []string{"physics", "plasma", "instability", "MHD"},
		},
		{
			FormulaID:   "mass_density",
			Name:        "Mass Density",
			Description: "Mass density: ρ = n × m",
			Equation:    "mass_density = number_density * particle_mass",
			Variables:   []string{"mass_density", "number_density", "particle_mass"},
			VariableDetails: []formula.Variable{
				{Name: "mass_density", Description: "Mass density", Unit: "kg/m³"},
				{Name: "number_density", Description: "Number density", Unit: "1/m³"},
				{Name: "particle_mass", Description: "Particle mass", Unit: "kg"},
			},
			Category: "plasma",
			Tags:     []string{"physics", "plasma", "density"},
		},

		// Geometry - Circle
		{
			FormulaID:   "diameter",
			Name:        "Circle Diameter",
			Description: "Diameter: d = 2r",
			Equation:    "diameter = 2 * radius",
			Variables:   []string{"diameter", "radius"},
			VariableDetails: []formula.Variable{
				{Name: "diameter", Description: "Circle diameter", Unit: "m"},
				{Name: "radius", Description: "Circle radius", Unit: "m"},
			},
			Category: "geometry",
			Tags:     []string{"math", "geometry", "circle"},
		},
		{
			FormulaID:   "circumference",
			Name:        "Circle Circumference",
			Description: "Circumference: C = 2πr",
			Equation:    "circumference = 2 * " + pi + " * radius",
			Variables:   []string{"circumference", "radius"},
			VariableDetails: []formula.Variable{
				{Name: "circumference", Description: "Circle circumference", Unit: "m"},
				{Name: "radius", Description: "Circle radius", Unit: "m"},
			},
			Category: "geometry",
			Tags:     []string{"math", "geometry", "circle"},
		},
		{
			FormulaID:   "circle_area",
			Name:        "Circle Area",
			Description: "Circle area: A = πr²",
			Equation:    "area = " + pi + " * radius**2",
			Variables:   []string{"area", "radius"},
			VariableDetails: []formula.Variable{
				{Name: "area", Description: "Circle area", Unit: "m²"},
				{Name: "radius", Description: "Circle radius", Unit: "m"},
			},
			Category: "geometry",
			Tags:     []string{"math", "geometry", "circle", "area"},
		},

		// Mathematics - Percentages
		{
			FormulaID:   "percent_change",
			Name:        "Percent Change",
			Description: "Percent change: Δ% = (new - old)/old × 100",
			Equation:    "percent_change = (new_value - original_value) / original_value * 100",
			Variables:   []string{"percent_change", "original_value", "new_value"},
			VariableDetails: []formula.Variable{
				{Name: "percent_change", Description: "Percentage change", Unit: "%"},
				{Name: "original_value", Description: "Original value", Unit: "various"},
				{Name: "new_value", Description: "New value", Unit: "various"},
			},
			Category: "mathematics",
			Tags:     []string{"math", "percentage", "percent"},
		},
		{
			FormulaID:   "percent_of",
			Name:        "Percent Of",
			Description: "Percent of: % = part/whole × 100",
			Equation:    "percentage = part / whole * 100",
			Variables:   []string{"percentage", "part", "whole"},
			VariableDetails: []formula.Variable{
				{Name: "percentage", Description: "Percentage value", Unit: "%"},
				{Name: "part", Description: "Part value", Unit: "various"},
				{Name: "whole", Description: "Whole value", Unit: "various"},
			},
			Category: "mathematics",
			Tags:     []string{"math", "percentage", "percent"},
		},
		{
			FormulaID:   "calculate_percentage",
			Name:        "Calculate Percentage",
			Description: "Calculate percentage: result = %/100 × number",
			Equation:    "result = percentage / 100 * number",
			Variables:   []string{"result", "percentage", "number"},
			VariableDetails: []formula.Variable{
				{Name: "result", Description: "Calculated result", Unit: "various"},
				{Name: "percentage", Description: "Percentage value", Unit: "%"},
				{Name: "number", Description: "Number to calculate percentage of", Unit: "various"},
			},
			Category: "mathematics",
			Tags:     []string{"math", "percentage", "percent"},
		},
	}
}
