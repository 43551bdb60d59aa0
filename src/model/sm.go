package model

// conversation:{user_id}          // Transcript list (RPUSH of JSON exchanges, capped, TTL refreshed)
