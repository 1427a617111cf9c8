package pose

// Joint names an independently transformable part of a rig
type Joint uint8

const (
	JointHead Joint = iota
	JointBody
	JointLeftArm
	JointRightArm
	JointCount
)

var jointNames = [JointCount]string{"head", "body", "left-arm", "right-arm"}

func (j Joint) String() string {
	if j < JointCount {
		return jointNames[j]
	}
	return "unknown"
}

// DeltaKind tells the host how to apply a joint value
type DeltaKind uint8

const (
	// RotationX is an absolute local rotation about the lateral axis, radians
	RotationX DeltaKind = iota
	// OffsetY is a vertical offset added to the joint's rest position
	OffsetY
)

// Kind returns how values for this joint are applied
func (j Joint) Kind() DeltaKind {
	if j == JointBody {
		return OffsetY
	}
	return RotationX
}

// Pose is the set of joint values for one actor at one instant.
// Fixed-size so evaluation never allocates.
type Pose struct {
	set    uint8
	values [JointCount]float64
}

// Set records a value for a joint
func (p *Pose) Set(j Joint, v float64) {
	p.set |= 1 << j
	p.values[j] = v
}

// Get returns the value for a joint and whether the pose drives it
func (p Pose) Get(j Joint) (float64, bool) {
	if j >= JointCount || p.set&(1<<j) == 0 {
		return 0, false
	}
	return p.values[j], true
}

// Len returns the number of driven joints
func (p Pose) Len() int {
	n := 0
	for j := Joint(0); j < JointCount; j++ {
		if p.set&(1<<j) != 0 {
			n++
		}
	}
	return n
}

// Each calls fn for every driven joint in joint order
func (p Pose) Each(fn func(j Joint, v float64)) {
	for j := Joint(0); j < JointCount; j++ {
		if p.set&(1<<j) != 0 {
			fn(j, p.values[j])
		}
	}
}
