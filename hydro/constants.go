package hydro

// Physical constants in SI. Nothing downstream applies these directly to
// internal-unit rho/p/m; primitiveRecovery and radiationSourceTerm instead
// go through the v0Squared-rescaled helpers below, since a Driver's
// internal unit system is only known once Initialise has run.
const (
	boltzmannK = 1.380649e-23      // J/K
	protonMass = 1.67262192369e-27 // kg, m_H
)

// pressureFactor returns P_fac / mu = k_B / (mu * m_H) in SI, for use where
// rho, p and T are all still SI (before Initialise has derived a unit
// system to rescale into).
func pressureFactor(mu float64) float64 {
	return boltzmannK / (mu * protonMass)
}

// pressureFactorInternal returns P_fac / mu rescaled so that
// p_internal = rho_internal * pressureFactorInternal(mu, v0Squared) * T,
// for an ideal gas of mean molecular mass mu*m_H. v0Squared is p0/rho0,
// the internal system's reference velocity squared, which is what SI
// k_B/(mu*m_H) must be divided by to act on internal-unit rho and p.
func pressureFactorInternal(mu, v0Squared float64) float64 {
	return boltzmannK / (mu * protonMass * v0Squared)
}

// tFacInternal returns m_H/k_B rescaled by v0Squared: T = mu *
// tFacInternal(v0Squared) * p_internal / rho_internal.
func tFacInternal(v0Squared float64) float64 {
	return protonMass * v0Squared / boltzmannK
}

// uFacInternal returns k_B/(m_H*(gamma-1)) rescaled by v0Squared, so that
// multiplying it by an internal-unit mass and a Kelvin temperature
// difference gives an internal-unit energy.
func uFacInternal(gamma, v0Squared float64) float64 {
	return boltzmannK / (protonMass * (gamma - 1) * v0Squared)
}
