package catalog

// Expected lists the qualified names the sample fixture always exposes.
// Tools under test must report every one of them.
func Expected() []string {
	return []string{
		"Greet",
		"Fgreet",
		"Number",
		"Calculate",
		"Add",
		"Multiply",
		"CalculateSum",
		"ProcessData",
		"DataProcessor",
		"NewDataProcessor",
		"DataProcessor.Name",
		"DataProcessor.Process",
		"Point",
		"Point.X",
		"Point.Y",
		"NewPoint",
		"Run",
	}
}
