package hohmann

import (
	"gonum.org/v1/gonum/mat"
)

// VNC2Inertial converts a vector expressed in the velocity-normal-conormal frame
// of the state (R, V) into the inertial frame.
func VNC2Inertial(R, V, vnc []float64) []float64 {
	return MxV33(DCMVNC(R, V), vnc)
}

// DCMVNC returns the direction cosine matrix from the VNC frame to the inertial frame.
// Its columns are V̂ (along velocity), N̂ (along angular momentum) and Ĉ = V̂ x N̂.
// For a circular orbit, Ĉ is radial and points away from the body.
func DCMVNC(R, V []float64) *mat.Dense {
	v := Unit(V)
	n := Unit(Cross(R, V))
	c := Cross(v, n)
	return mat.NewDense(3, 3, []float64{
		v[0], n[0], c[0],
		v[1], n[1], c[1],
		v[2], n[2], c[2]})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v []float64) []float64 {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(len(v), v))
	return []float64{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}
