package timeline

// Vec3 三维向量，用于相机位置与注视点。
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Lerp 在 v 和 o 之间按 t 逐分量线性插值。
// t=0 返回 v，t=1 返回 o。
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}
