// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

// Package command defines the distancetrack CLI. It wires flags, validators
// and the run action that drives pairs through the caches and provider.
package command
