/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package analytics

import "github.com/carverauto/campusnoc/pkg/models"

// AggregateRoles buckets devices by role and averages CPU, memory and
// health per bucket. Out-of-range or missing metrics count as zero. Devices
// with an unrecognized role are skipped and reported in Ignored.
func AggregateRoles(devices []models.Device) models.RoleSummary {
	type sample struct {
		cpu, memory, health []float64
	}

	samples := make(map[models.DeviceRole]*sample, 3)
	for _, role := range models.KnownRoles() {
		samples[role] = &sample{}
	}

	ignored := 0

	for i := range devices {
		role, ok := models.NormalizeRole(devices[i].Role)
		if !ok {
			ignored++
			continue
		}

		s := samples[role]
		s.cpu = append(s.cpu, devices[i].CPUUsage.Percent())
		s.memory = append(s.memory, devices[i].MemoryUsage.Percent())
		s.health = append(s.health, devices[i].HealthScore.Percent())
	}

	buckets := make([]models.RoleBucket, 0, len(samples))

	for _, role := range models.KnownRoles() {
		s := samples[role]
		bucket := models.RoleBucket{
			Role:  role,
			Label: role.Label(),
			Count: len(s.health),
		}

		if bucket.Count > 0 {
			bucket.Available = true
			bucket.AvgCPU = roundedMean(s.cpu)
			bucket.AvgMemory = roundedMean(s.memory)
			bucket.AvgHealth = roundedMean(s.health)
		}

		buckets = append(buckets, bucket)
	}

	return models.RoleSummary{Buckets: buckets, Ignored: ignored}
}
