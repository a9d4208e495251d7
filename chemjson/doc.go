//Package chemjson implements serializacion and unserialization of
//MoleQule requests and results. It's planned use is the communication of MoleQule
//with other, independent programs which can be written in
//languages other than Go, as long as those languages implement a
//way of serializing and unserializing JSON data.
//An external program writes one request per line and collects one
//response per line, for instance, via UNIX pipes.
package chemjson
