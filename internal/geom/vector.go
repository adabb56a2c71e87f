package geom

import "math"

// normalizeEpsilon guards Normalize against division by a near-zero magnitude.
const normalizeEpsilon = 1e-10

// Vector is a 3D value type. X points downrange, Y is height above the
// sight line (negative = drop), Z is windage.
type Vector struct {
	X, Y, Z float64
}

func New(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y, -v.Z}
}

func (v Vector) Scale(c float64) Vector {
	return Vector{v.X * c, v.Y * c, v.Z * c}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector. Vectors shorter than the epsilon are
// returned unchanged instead of dividing by zero.
func (v Vector) Normalize() Vector {
	m := v.Magnitude()
	if m < normalizeEpsilon {
		return v
	}
	return v.Scale(1 / m)
}

func (v Vector) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// In-place variants. Callers that want to avoid value churn in tight loops
// use these; the value-returning forms above never alias their receiver.

func (v *Vector) AddInPlace(o Vector) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
}

func (v *Vector) SubInPlace(o Vector) {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
}

func (v *Vector) ScaleInPlace(c float64) {
	v.X *= c
	v.Y *= c
	v.Z *= c
}

func (v *Vector) NegInPlace() {
	v.X = -v.X
	v.Y = -v.Y
	v.Z = -v.Z
}
