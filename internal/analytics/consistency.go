package analytics

// maxConsistencyVariance: дисперсия (4ч)² в секундах² дает нулевую регулярность.
const maxConsistencyVariance = float64(4*3600) * float64(4*3600)

// ConsistencyScore переводит разброс времени прихода и ухода в оценку [0, 1],
// где 1 - приход и уход всегда в одно и то же время.
func ConsistencyScore(starts, ends []TimeOfDay) float64 {
	if len(starts) == 0 || len(ends) == 0 {
		return 0
	}

	startScore := max(0, 1-filteredVariance(starts)/maxConsistencyVariance)
	endScore := max(0, 1-filteredVariance(ends)/maxConsistencyVariance)

	return (startScore + endScore) / 2
}
