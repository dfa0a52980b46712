package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomInUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	var mean Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		p := RandomInUnitSphere(random)
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("point %v outside the unit sphere", p)
		}
		mean = mean.Add(p)
	}

	// Uniform samples are centred on the origin
	mean = mean.Divide(n)
	assert.InDelta(t, 0.0, mean.X, 0.03)
	assert.InDelta(t, 0.0, mean.Y, 0.03)
	assert.InDelta(t, 0.0, mean.Z, 0.03)
}

func TestRandomUnitVector(t *testing.T) {
	random := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		assert.InDelta(t, 1.0, RandomUnitVector(random).Length(), 1e-9)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(random)
		assert.Equal(t, 0.0, p.Z)
		assert.Less(t, p.LengthSquared(), 1.0)
	}
}

func TestRandomVec3Range(t *testing.T) {
	random := rand.New(rand.NewSource(5))

	for i := 0; i < 1000; i++ {
		v := RandomVec3(random, -20, 20)
		for axis := 0; axis < 3; axis++ {
			assert.GreaterOrEqual(t, v.Index(axis), -20.0)
			assert.Less(t, v.Index(axis), 20.0)
		}
	}
}

func TestSamplingIsDeterministicPerSeed(t *testing.T) {
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))

	for i := 0; i < 10; i++ {
		assert.Equal(t, RandomInUnitSphere(a), RandomInUnitSphere(b))
	}
}
