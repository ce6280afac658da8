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

// DeviceNames resolves device identifiers to display names.
type DeviceNames map[string]string

func NewDeviceNames(devices []models.Device) DeviceNames {
	names := make(DeviceNames, len(devices))
	for i := range devices {
		if _, seen := names[devices[i].ID]; !seen {
			names[devices[i].ID] = devices[i].DisplayName()
		}
	}

	return names
}

// Name falls back to the identifier for unknown devices.
func (n DeviceNames) Name(id string) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}

	return id
}

// ProjectDeviceLoad returns the per-device CPU and health series in
// inventory order.
func ProjectDeviceLoad(devices []models.Device) []models.DeviceLoad {
	load := make([]models.DeviceLoad, 0, len(devices))
	for i := range devices {
		load = append(load, models.DeviceLoad{
			DeviceID: devices[i].ID,
			Name:     devices[i].DisplayName(),
			CPU:      devices[i].CPUUsage.Percent(),
			Health:   devices[i].HealthScore.Percent(),
		})
	}

	return load
}

// BuildOverview computes the KPI strip.
func BuildOverview(devices []models.Device, roles models.RoleSummary, automation *models.AutomationView, alerts *models.AlertView) models.Overview {
	overview := models.Overview{TotalDevices: len(devices)}

	if b := roles.Bucket(models.RoleRouter); b != nil {
		overview.Routers = b.Count
	}

	if b := roles.Bucket(models.RoleDistributionSwitch); b != nil {
		overview.DistributionSwitches = b.Count
	}

	if b := roles.Bucket(models.RoleAccessSwitch); b != nil {
		overview.AccessSwitches = b.Count
	}

	health := make([]float64, 0, len(devices))
	for i := range devices {
		health = append(health, devices[i].HealthScore.Percent())
	}

	if avg := roundedMean(health); avg != nil {
		overview.AvgHealth = *avg
	}

	if automation != nil {
		overview.AutomationSuccessPct = automation.SuccessRate
		overview.AutomationTasks = automation.Total
	}

	if alerts != nil {
		overview.OpenAlerts = alerts.Open
	}

	return overview
}
