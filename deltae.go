package colors

import (
	"math"

	"github.com/ganemedelabs/saturon/mat"
)

// deltaEOK is the Euclidean distance between two OKLab coordinates,
// scaled by 100 per §4.7.
func deltaEOK(a, b mat.Vec3) float64 {
	dl, da, db := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dl*dl+da*da+db*db) * 100
}

// deltaE76 is the plain Euclidean distance in LAB.
func deltaE76(a, b mat.Vec3) float64 {
	dl, da, db := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dl*dl + da*da + db*db)
}

// deltaE94 implements CIE94 with the conventional graphic-arts
// constants kL=kC=kH=1, K1=0.045, K2=0.015.
func deltaE94(lab1, lab2 mat.Vec3) float64 {
	const kL, kC, kH = 1.0, 1.0, 1.0
	const k1, k2 = 0.045, 0.015

	l1, a1, b1 := lab1[0], lab1[1], lab1[2]
	l2, a2, b2 := lab2[0], lab2[1], lab2[2]

	c1 := math.Hypot(a1, b1)
	c2 := math.Hypot(a2, b2)
	deltaL := l1 - l2
	deltaC := c1 - c2
	deltaA := a1 - a2
	deltaB := b1 - b2
	deltaHSq := deltaA*deltaA + deltaB*deltaB - deltaC*deltaC
	if deltaHSq < 0 {
		deltaHSq = 0
	}

	sl := 1.0
	sc := 1 + k1*c1
	sh := 1 + k2*c1

	termL := deltaL / (kL * sl)
	termC := deltaC / (kC * sc)
	termH := math.Sqrt(deltaHSq) / (kH * sh)
	return math.Sqrt(termL*termL + termC*termC + termH*termH)
}

// deltaE2000 implements CIEDE2000 per Sharma's formulation (kL=kC=kH=1),
// grounded on the numbered-equation layout of
// NVIDIA-k8s-device-plugin's ciede2000.go.
func deltaE2000(lab1, lab2 mat.Vec3) float64 {
	const kL, kC, kH = 1.0, 1.0, 1.0
	const deg2Rad = math.Pi / 180
	const pow25To7 = 6103515625.0 // 25^7

	l1, a1, b1 := lab1[0], lab1[1], lab1[2]
	l2, a2, b2 := lab2[0], lab2[1], lab2[2]

	cAvg := (math.Hypot(a1, b1) + math.Hypot(a2, b2)) / 2
	g := 0.5 * (1 - math.Sqrt(math.Pow(cAvg, 7)/(math.Pow(cAvg, 7)+pow25To7)))

	aP1 := a1 * (1 + g)
	aP2 := a2 * (1 + g)

	cP1 := math.Hypot(aP1, b1)
	cP2 := math.Hypot(aP2, b2)

	hP1 := 0.0
	if aP1 != 0 || b1 != 0 {
		hP1 = math.Atan2(b1, aP1)
		if hP1 < 0 {
			hP1 += 2 * math.Pi
		}
	}
	hP2 := 0.0
	if aP2 != 0 || b2 != 0 {
		hP2 = math.Atan2(b2, aP2)
		if hP2 < 0 {
			hP2 += 2 * math.Pi
		}
	}

	deltaLP := l2 - l1
	deltaCP := cP2 - cP1

	dhp := hP2 - hP1
	cpProduct := cP1 * cP2
	var deltahp float64
	switch {
	case cpProduct == 0:
		deltahp = 0
	case math.Abs(dhp) <= math.Pi:
		deltahp = dhp
	case dhp > math.Pi:
		deltahp = dhp - 2*math.Pi
	case dhp < -math.Pi:
		deltahp = dhp + 2*math.Pi
	}
	deltaHP := 2 * math.Sqrt(cpProduct) * math.Sin(deltahp/2)

	lPAvg := (l1 + l2) / 2
	cPAvg := (cP1 + cP2) / 2

	var hPAvg float64
	hSum := hP1 + hP2
	switch {
	case cpProduct == 0:
		hPAvg = hSum
	case math.Abs(hP1-hP2) <= math.Pi:
		hPAvg = hSum / 2
	case hSum < 2*math.Pi:
		hPAvg = (hSum + 2*math.Pi) / 2
	default:
		hPAvg = (hSum - 2*math.Pi) / 2
	}

	t := 1 - 0.17*math.Cos(hPAvg-30*deg2Rad) + 0.24*math.Cos(2*hPAvg) +
		0.32*math.Cos(3*hPAvg+6*deg2Rad) - 0.2*math.Cos(4*hPAvg-63*deg2Rad)

	deltaTheta := 30 * deg2Rad * math.Exp(-math.Pow((hPAvg/deg2Rad-275)/25, 2))
	rc := 2 * math.Sqrt(math.Pow(cPAvg, 7)/(math.Pow(cPAvg, 7)+pow25To7))
	sl := 1 + (0.015*math.Pow(lPAvg-50, 2))/math.Sqrt(20+math.Pow(lPAvg-50, 2))
	sc := 1 + 0.045*cPAvg
	sh := 1 + 0.015*cPAvg*t
	rt := -math.Sin(2*deltaTheta) * rc

	dl := deltaLP / (kL * sl)
	dc := deltaCP / (kC * sc)
	dh := deltaHP / (kH * sh)

	return math.Sqrt(dl*dl + dc*dc + dh*dh + rt*dc*dh)
}
