package builtin

import "github.com/relicdump/xnb/typereader"

const xnaNamespace = "Microsoft.Xna.Framework."

type Vector2 struct{ X, Y float32 }
type Vector3 struct{ X, Y, Z float32 }
type Vector4 struct{ X, Y, Z, W float32 }

// Matrix holds the 16 components of a row-major 4x4 matrix, named the
// way .NET's Matrix struct names its fields.
type Matrix struct {
	M11, M12, M13, M14 float32
	M21, M22, M23, M24 float32
	M31, M32, M33, M34 float32
	M41, M42, M43, M44 float32
}

type Quaternion struct{ X, Y, Z, W float32 }

// Color holds four unsigned byte channels, packed in R,G,B,A order.
type Color struct{ R, G, B, A uint8 }

// Plane is a unit normal plus the signed distance from the origin.
type Plane struct {
	Normal Vector3
	D      float32
}

type Point struct{ X, Y int32 }

type Rectangle struct{ X, Y, Width, Height int32 }

type BoundingBox struct{ Min, Max Vector3 }

type BoundingSphere struct {
	Center Vector3
	Radius float32
}

// BoundingFrustum is stored as the Matrix it was derived from; its six
// planes are computed from the matrix rather than transmitted directly.
type BoundingFrustum struct{ Matrix Matrix }

type Ray struct {
	Position  Vector3
	Direction Vector3
}

// CurveKey is one keyframe of a Curve: a position along the curve, the
// value at that position, the in/out tangents used for interpolation,
// and a continuity marker.
type CurveKey struct {
	Position            float32
	Value                float32
	TangentIn, TangentOut float32
	Continuity           int32
}

// Curve is a piecewise curve: loop behavior before the first and after
// the last key, plus the ordered list of keys.
type Curve struct {
	PreLoop  int32
	PostLoop int32
	Keys     []CurveKey
}

func readVector2(eng typereader.Engine) (Vector2, error) {
	x, err := eng.Stream().ReadF32()
	if err != nil {
		return Vector2{}, err
	}
	y, err := eng.Stream().ReadF32()
	if err != nil {
		return Vector2{}, err
	}
	return Vector2{X: x, Y: y}, nil
}

func readVector3(eng typereader.Engine) (Vector3, error) {
	x, err := eng.Stream().ReadF32()
	if err != nil {
		return Vector3{}, err
	}
	y, err := eng.Stream().ReadF32()
	if err != nil {
		return Vector3{}, err
	}
	z, err := eng.Stream().ReadF32()
	if err != nil {
		return Vector3{}, err
	}
	return Vector3{X: x, Y: y, Z: z}, nil
}

func readVector4(eng typereader.Engine) (Vector4, error) {
	x, err := eng.Stream().ReadF32()
	if err != nil {
		return Vector4{}, err
	}
	y, err := eng.Stream().ReadF32()
	if err != nil {
		return Vector4{}, err
	}
	z, err := eng.Stream().ReadF32()
	if err != nil {
		return Vector4{}, err
	}
	w, err := eng.Stream().ReadF32()
	if err != nil {
		return Vector4{}, err
	}
	return Vector4{X: x, Y: y, Z: z, W: w}, nil
}

func readMatrix(eng typereader.Engine) (Matrix, error) {
	var m Matrix
	fields := []*float32{
		&m.M11, &m.M12, &m.M13, &m.M14,
		&m.M21, &m.M22, &m.M23, &m.M24,
		&m.M31, &m.M32, &m.M33, &m.M34,
		&m.M41, &m.M42, &m.M43, &m.M44,
	}
	for _, f := range fields {
		v, err := eng.Stream().ReadF32()
		if err != nil {
			return Matrix{}, err
		}
		*f = v
	}
	return m, nil
}

// mathReader adapts a zero-argument decode func into a typereader.Reader
// for a concrete value-typed math struct.
type mathReader struct {
	readerName string
	targetType string
	read       func(typereader.Engine) (any, error)
}

func (r mathReader) TargetType() string                    { return r.targetType }
func (r mathReader) ReaderName() string                    { return namespace + r.readerName }
func (r mathReader) IsValueType() bool                     { return true }
func (r mathReader) Initialize(*typereader.Registry) error { return nil }
func (r mathReader) Read(eng typereader.Engine) (any, error) {
	return r.read(eng)
}

func readCurve(eng typereader.Engine) (any, error) {
	preLoop, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	postLoop, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	count, err := eng.Stream().ReadVaruint()
	if err != nil {
		return nil, err
	}

	keys := make([]CurveKey, count)
	for i := range keys {
		position, err := eng.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		value, err := eng.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		tangentIn, err := eng.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		tangentOut, err := eng.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		continuity, err := eng.Stream().ReadI32()
		if err != nil {
			return nil, err
		}
		keys[i] = CurveKey{
			Position:   position,
			Value:      value,
			TangentIn:  tangentIn,
			TangentOut: tangentOut,
			Continuity: continuity,
		}
	}

	return Curve{PreLoop: preLoop, PostLoop: postLoop, Keys: keys}, nil
}

func registerMath(reg *typereader.Registry) {
	reg.RegisterConcrete(mathReader{"Vector2Reader", xnaNamespace + "Vector2", func(e typereader.Engine) (any, error) {
		return readVector2(e)
	}})
	reg.RegisterConcrete(mathReader{"Vector3Reader", xnaNamespace + "Vector3", func(e typereader.Engine) (any, error) {
		return readVector3(e)
	}})
	reg.RegisterConcrete(mathReader{"Vector4Reader", xnaNamespace + "Vector4", func(e typereader.Engine) (any, error) {
		return readVector4(e)
	}})
	reg.RegisterConcrete(mathReader{"MatrixReader", xnaNamespace + "Matrix", func(e typereader.Engine) (any, error) {
		return readMatrix(e)
	}})
	reg.RegisterConcrete(mathReader{"QuaternionReader", xnaNamespace + "Quaternion", func(e typereader.Engine) (any, error) {
		x, err := e.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		y, err := e.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		z, err := e.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		w, err := e.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		return Quaternion{X: x, Y: y, Z: z, W: w}, nil
	}})
	reg.RegisterConcrete(mathReader{"ColorReader", xnaNamespace + "Graphics.Color", func(e typereader.Engine) (any, error) {
		r, err := e.Stream().ReadU8()
		if err != nil {
			return nil, err
		}
		g, err := e.Stream().ReadU8()
		if err != nil {
			return nil, err
		}
		b, err := e.Stream().ReadU8()
		if err != nil {
			return nil, err
		}
		a, err := e.Stream().ReadU8()
		if err != nil {
			return nil, err
		}
		return Color{R: r, G: g, B: b, A: a}, nil
	}})
	reg.RegisterConcrete(mathReader{"PlaneReader", xnaNamespace + "Plane", func(e typereader.Engine) (any, error) {
		normal, err := readVector3(e)
		if err != nil {
			return nil, err
		}
		d, err := e.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		return Plane{Normal: normal, D: d}, nil
	}})
	reg.RegisterConcrete(mathReader{"PointReader", xnaNamespace + "Point", func(e typereader.Engine) (any, error) {
		x, err := e.Stream().ReadI32()
		if err != nil {
			return nil, err
		}
		y, err := e.Stream().ReadI32()
		if err != nil {
			return nil, err
		}
		return Point{X: x, Y: y}, nil
	}})
	reg.RegisterConcrete(mathReader{"RectangleReader", xnaNamespace + "Rectangle", func(e typereader.Engine) (any, error) {
		x, err := e.Stream().ReadI32()
		if err != nil {
			return nil, err
		}
		y, err := e.Stream().ReadI32()
		if err != nil {
			return nil, err
		}
		w, err := e.Stream().ReadI32()
		if err != nil {
			return nil, err
		}
		h, err := e.Stream().ReadI32()
		if err != nil {
			return nil, err
		}
		return Rectangle{X: x, Y: y, Width: w, Height: h}, nil
	}})
	reg.RegisterConcrete(mathReader{"BoundingBoxReader", xnaNamespace + "BoundingBox", func(e typereader.Engine) (any, error) {
		min, err := readVector3(e)
		if err != nil {
			return nil, err
		}
		max, err := readVector3(e)
		if err != nil {
			return nil, err
		}
		return BoundingBox{Min: min, Max: max}, nil
	}})
	reg.RegisterConcrete(mathReader{"BoundingSphereReader", xnaNamespace + "BoundingSphere", func(e typereader.Engine) (any, error) {
		center, err := readVector3(e)
		if err != nil {
			return nil, err
		}
		radius, err := e.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		return BoundingSphere{Center: center, Radius: radius}, nil
	}})
	reg.RegisterConcrete(mathReader{"BoundingFrustumReader", xnaNamespace + "BoundingFrustum", func(e typereader.Engine) (any, error) {
		m, err := readMatrix(e)
		if err != nil {
			return nil, err
		}
		return BoundingFrustum{Matrix: m}, nil
	}})
	reg.RegisterConcrete(mathReader{"RayReader", xnaNamespace + "Ray", func(e typereader.Engine) (any, error) {
		pos, err := readVector3(e)
		if err != nil {
			return nil, err
		}
		dir, err := readVector3(e)
		if err != nil {
			return nil, err
		}
		return Ray{Position: pos, Direction: dir}, nil
	}})
	reg.RegisterConcrete(mathReader{"CurveReader", xnaNamespace + "Curve", readCurve})
}
