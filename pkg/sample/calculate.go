package sample

// Number is the set of types the arithmetic helpers accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Calculate calculates the sum of two numbers
func Calculate[T Number](x, y T) T {
	result := x + y
	return result
}

// Add returns a + b.
func Add(a, b int32) int32 {
	return a + b
}

// Multiply returns x * y.
func Multiply(x, y int32) int32 {
	return x * y
}

// CalculateSum sums numbers. An empty slice sums to zero.
func CalculateSum(numbers []int32) int32 {
	var sum int32
	for _, n := range numbers {
		sum += n
	}
	return sum
}
