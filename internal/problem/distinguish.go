package problem

// DiseasePair is an unordered pair of disease indices i < j.
type DiseasePair struct {
	I, J int
}

// DistinguishTable is the derived constraint table: one column per
// unordered disease pair, one row per test. Entry [t][c] is 1 iff test t
// distinguishes the pair at column c (the two diseases disagree on that
// test's result).
type DistinguishTable struct {
	Pairs []DiseasePair

	// Table[t][c] is 1 iff test t distinguishes Pairs[c].
	Table [][]int
}

// Model wraps a parsed Instance together with its derived DistinguishTable,
// ready to hand to an LP formulation.
type Model struct {
	Instance *Instance
	Table    *DistinguishTable
}

// NewModel derives the DistinguishTable for inst and bundles it with the
// instance.
func NewModel(inst *Instance) *Model {
	return &Model{
		Instance: inst,
		Table:    deriveDistinguishTable(inst),
	}
}

// deriveDistinguishTable computes, for every pair (i, j) with i < j, the
// componentwise indicator A[t][i] != A[t][j] across all tests t. Columns are
// built pair-by-pair and then transposed so each row corresponds to a test,
// matching the derivation in the original lpsolver.
func deriveDistinguishTable(inst *Instance) *DistinguishTable {
	var pairs []DiseasePair
	var columns [][]int // one entry per pair, each of length NumTests

	for i := 0; i < inst.NumDiseases; i++ {
		for j := i + 1; j < inst.NumDiseases; j++ {
			col := make([]int, inst.NumTests)
			for t := 0; t < inst.NumTests; t++ {
				if inst.A[t][i] != inst.A[t][j] {
					col[t] = 1
				}
			}
			pairs = append(pairs, DiseasePair{I: i, J: j})
			columns = append(columns, col)
		}
	}

	table := make([][]int, inst.NumTests)
	for t := 0; t < inst.NumTests; t++ {
		row := make([]int, len(columns))
		for c, col := range columns {
			row[c] = col[t]
		}
		table[t] = row
	}

	return &DistinguishTable{Pairs: pairs, Table: table}
}
