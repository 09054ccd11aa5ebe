package composer

// HostPort computes the externally published port for one replica: the
// role's base port plus the 0-based replica index. Indices are contiguous
// and unique per role, so no two replicas ever collide. ok is false when
// no base is configured, meaning the replica publishes nothing.
func HostPort(cfg *Config, key string, index int) (int, bool) {
	base, ok := cfg.PortBase(key)
	if !ok {
		return 0, false
	}
	return base + index, true
}
