/*
Package access defines the identity used to address one node of the
plugin namespace: a path, the user-interaction answers queued for the
resolver, and a layered preference configuration.

A Descriptor is immutable once built and is shared by reference across
concurrent crawl workers and as the cache key in pkg/cache. Config
carries three independent ordered preference lists (language,
resolution, format), each with a flag that lets a higher-priority
config veto inheritance from whatever called it.
*/
package access
